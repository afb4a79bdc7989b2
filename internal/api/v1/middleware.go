package v1

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"
)

// statusRecorder remembers the first status written.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

// LogRequests logs every request with its status and duration.
func LogRequests(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(wrapped, r)
		if wrapped.status == 0 {
			wrapped.status = http.StatusOK
		}
		log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// requireAPIKey rejects requests without the configured X-Api-Key.
func (s *Server) requireAPIKey(next http.HandlerFunc) http.HandlerFunc {
	if s.deps.APIKey == "" {
		return next
	}
	want := []byte(s.deps.APIKey)
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("X-Api-Key")
		if key == "" {
			key = r.URL.Query().Get("apikey")
		}
		if subtle.ConstantTimeCompare([]byte(key), want) != 1 {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or missing API key")
			return
		}
		next(w, r)
	}
}

// requireOptional answers 503 when an optional dependency is missing.
func requireOptional(present bool, code, msg string, next http.HandlerFunc) http.HandlerFunc {
	if present {
		return next
	}
	return func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusServiceUnavailable, code, msg)
	}
}
