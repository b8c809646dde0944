package middleware

import (
	"net/http"
	"os"
	"strings"
)

// allowedOrigins reads WEB_ALLOWED_ORIGINS (comma-separated) into a set.
func allowedOrigins() map[string]struct{} {
	origins := make(map[string]struct{})
	for _, o := range strings.Split(os.Getenv("WEB_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins[o] = struct{}{}
		}
	}
	return origins
}

// isLocalOrigin returns true for http(s)://localhost origins on any port.
// Those are always allowed for development convenience.
func isLocalOrigin(origin string) bool {
	return strings.HasPrefix(origin, "http://localhost") ||
		strings.HasPrefix(origin, "https://localhost") ||
		strings.HasPrefix(origin, "http://127.0.0.1")
}

// CORS returns middleware that handles CORS headers against the configured
// origin whitelist.
func CORS() func(http.Handler) http.Handler {
	allowed := allowedOrigins()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" {
				if _, ok := allowed[origin]; ok || isLocalOrigin(origin) {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Access-Control-Allow-Credentials", "true")
				}
			}

			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, X-Requested-With")
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
