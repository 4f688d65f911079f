package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/railtrace/railway-assets/pkg/logger"
)

// RequestID attaches a trace id to every request. An incoming X-Trace-ID is
// honored so gateway-issued ids survive into the logs.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := logger.With(r.Context(), "traceID", traceID)
		w.Header().Set("X-Trace-ID", traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
