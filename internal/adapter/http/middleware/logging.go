package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// RequestLogger attaches a request-scoped zerolog logger to the context
// (reachable through zerolog.Ctx) and writes one access line per request.
// Probe endpoints log at debug so they do not drown real traffic.
func RequestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	base := logger.With().Str("component", "http").Logger()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLogger := base.With().Str("request_id", chimiddleware.GetReqID(r.Context())).Logger()

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(reqLogger.WithContext(r.Context())))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			reqLogger.WithLevel(accessLevel(r.URL.Path, status)).
				Str("method", r.Method).
				Str("route", routePattern(r)).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Str("remote_addr", r.RemoteAddr).
				Msg("request completed")
		})
	}
}

func accessLevel(path string, status int) zerolog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zerolog.ErrorLevel
	case status >= http.StatusBadRequest:
		return zerolog.WarnLevel
	case path == "/health" || path == "/ready" || path == "/metrics":
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}
