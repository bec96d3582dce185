package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog"
)

// Recovery turns a handler panic into a 500. http.ErrAbortHandler is
// re-raised so net/http can abort the connection.
func Recovery(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				// Prefer the request logger so the line carries request_id.
				log := zerolog.Ctx(r.Context())
				if log.GetLevel() == zerolog.Disabled {
					log = &logger
				}
				log.Error().
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Msg("panic recovered")

				writeJSONError(w, http.StatusInternalServerError, "internal server error")
			}()

			next.ServeHTTP(w, r)
		})
	}
}
