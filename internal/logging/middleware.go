package logging

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// SessionCookie is the cookie naming a visitor's session.
const SessionCookie = "museum_session"

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// quiet reports paths polled often enough to drown the log.
func quiet(path string) bool {
	return strings.HasPrefix(path, "/static/") ||
		path == "/health" ||
		strings.HasSuffix(path, "/qr.png")
}

// RequestLogger is middleware that logs HTTP requests.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if quiet(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		level := slog.LevelInfo
		if rw.status >= 500 {
			level = slog.LevelError
		} else if rw.status >= 400 {
			level = slog.LevelWarn
		}

		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.status,
			"duration", time.Since(start).String(),
			"ip", r.RemoteAddr,
		}
		if c, err := r.Cookie(SessionCookie); err == nil && len(c.Value) >= 8 {
			attrs = append(attrs, "session", c.Value[:8])
		}
		if loc := rw.Header().Get("Location"); loc != "" {
			attrs = append(attrs, "location", loc)
		}
		slog.Log(r.Context(), level, "request", attrs...)
	})
}
