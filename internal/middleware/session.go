package middleware

import (
	"log/slog"
	"net/http"

	"unicatalog/internal/session"
	"unicatalog/internal/view"

	"github.com/gorilla/sessions"
)

// LoadSession attaches the visitor's session and fresh view locals to the
// request context. A session that cannot be read is replaced by a new one.
func LoadSession(store sessions.Store, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := store.Get(r, session.CookieName)
			if err != nil {
				logger.Warn("session unreadable, starting fresh", "path", r.URL.Path, "error", err)
			}
			if raw == nil {
				raw = sessions.NewSession(store, session.CookieName)
				raw.IsNew = true
			}

			sess := session.Wrap(raw)
			locals := &view.Locals{}
			if _, ok := sess.User(); ok {
				locals.IsLoggedIn = true
			}

			ctx := session.NewContext(r.Context(), sess)
			ctx = view.WithLocals(ctx, locals)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
