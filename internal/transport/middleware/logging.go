package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Field names masked before request/response bodies reach the logs.
// Substring match on lowercased keys, so password_hash and refresh_token
// are covered too.
var sensitiveFields = []string{
	"password",
	"token",
	"authorization",
	"secret",
	"api_key",
	"credential",
}

// LoggingMiddleware logs every request and response pair with credentials
// masked. Bodies are buffered, so keep it off any streaming endpoint.
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			var requestBody []byte
			if r.Body != nil {
				requestBody, _ = io.ReadAll(r.Body)
				r.Body = io.NopCloser(bytes.NewReader(requestBody))
			}

			logger.Info("incoming request",
				"method", r.Method,
				"path", r.URL.Path,
				"query", r.URL.RawQuery,
				"remote_addr", r.RemoteAddr,
				"body", maskBody(requestBody),
			)

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			level := slog.LevelInfo
			switch {
			case recorder.status >= 500:
				level = slog.LevelError
			case recorder.status >= 400:
				level = slog.LevelWarn
			}

			logger.Log(r.Context(), level, "response",
				"method", r.Method,
				"path", r.URL.Path,
				"status_code", recorder.status,
				"duration_ms", time.Since(start).Milliseconds(),
				"response_size", recorder.size,
			)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	n, err := sr.ResponseWriter.Write(b)
	sr.size += n
	return n, err
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, field := range sensitiveFields {
		if strings.Contains(lower, field) {
			return true
		}
	}
	return false
}

// maskBody renders a JSON body with sensitive values replaced. Non-JSON
// bodies are dropped entirely rather than risk leaking a credential.
func maskBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var payload interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "[non-json body omitted]"
	}

	masked, err := json.Marshal(maskValue(payload))
	if err != nil {
		return "[unloggable body]"
	}
	return string(masked)
}

func maskValue(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, nested := range v {
			if isSensitiveKey(key) {
				out[key] = "[FILTERED]"
				continue
			}
			out[key] = maskValue(nested)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, nested := range v {
			out[i] = maskValue(nested)
		}
		return out
	default:
		return v
	}
}
