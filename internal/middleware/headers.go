package middleware

import "net/http"

// DemoHeaders marks responses of the demo page.
func DemoHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Demo-Page", "true")
		w.Header().Set("X-Middleware-Demo", "This is my demo page!")
		next.ServeHTTP(w, r)
	})
}
