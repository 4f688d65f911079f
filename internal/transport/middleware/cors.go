package middleware

import (
	"net/http"
	"strings"
)

// CORS allows the dashboard frontend, served from a different origin in
// development, to call the API. allowedOrigins is the comma-separated list
// from the server config; "*" or an empty list allows any origin, otherwise
// only listed origins are echoed back.
func CORS(allowedOrigins string) func(http.Handler) http.Handler {
	var origins []string
	allowAll := allowedOrigins == "" || allowedOrigins == "*"
	if !allowAll {
		for _, origin := range strings.Split(allowedOrigins, ",") {
			origin = strings.TrimSpace(origin)
			if origin == "*" {
				allowAll = true
				break
			}
			if origin != "" {
				origins = append(origins, origin)
			}
		}
	}

	allowed := func(origin string) bool {
		for _, o := range origins {
			if o == origin {
				return true
			}
		}
		return false
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case allowAll:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case allowed(r.Header.Get("Origin")):
				w.Header().Set("Access-Control-Allow-Origin", r.Header.Get("Origin"))
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-Trace-ID")
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
