// Package middleware provides HTTP middleware for the Spin Bot API.
package middleware

import "net/http"

// CORS returns middleware allowing the configured site origin. An empty
// origin allows any caller, which is only appropriate in development.
func CORS(allowedOrigin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			switch {
			case allowedOrigin == "" && origin != "":
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case origin == allowedOrigin && origin != "":
				w.Header().Set("Access-Control-Allow-Origin", origin)
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
