package middleware

import (
	"net/http"

	"unicatalog/internal/session"
	"unicatalog/internal/view"
)

// RequireLogin lets the request through when the session carries a user and
// marks the page as logged in. Everyone else is sent to /login.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())
		if sess != nil {
			if _, ok := sess.User(); ok {
				view.LocalsFrom(r.Context()).IsLoggedIn = true
				next.ServeHTTP(w, r)
				return
			}
		}

		http.Redirect(w, r, "/login", http.StatusSeeOther)
	})
}
