package middleware

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/iho/cashflow/internal/usecase"
)

const (
	// IdempotencyKeyHeader carries the client-chosen key of a retryable request.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayHeader is set on responses served from the store.
	IdempotencyReplayHeader = "X-Idempotency-Replay"

	maxIdempotencyKeyLength = 255
	defaultIdempotencyTTL   = 24 * time.Hour
)

// Idempotency answers a repeated request carrying the same Idempotency-Key
// with the response of the first one instead of running the handler again.
// Requests without the header pass through. Only 2xx responses are kept; any
// other outcome releases the key so the client can retry.
func Idempotency(store usecase.IdempotencyStore, ttl time.Duration) func(http.Handler) http.Handler {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(IdempotencyKeyHeader)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}
			if len(key) > maxIdempotencyKeyLength {
				writeJSONError(w, http.StatusBadRequest, "Idempotency-Key exceeds "+strconv.Itoa(maxIdempotencyKeyLength)+" characters")
				return
			}

			scoped := r.Method + ":" + r.URL.Path + ":" + key
			log := zerolog.Ctx(r.Context())

			claimed, stored, err := store.Claim(r.Context(), scoped, ttl)
			if err != nil {
				log.Error().Err(err).Msg("idempotency check failed")
				writeJSONError(w, http.StatusInternalServerError, "idempotency check failed")
				return
			}
			if stored != nil {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set(IdempotencyReplayHeader, "true")
				w.WriteHeader(stored.Status)
				_, _ = w.Write(stored.Body)
				return
			}
			if !claimed {
				writeJSONError(w, http.StatusConflict, "a request with this Idempotency-Key is in progress")
				return
			}

			var body bytes.Buffer
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			ww.Tee(&body)

			// Store writes must outlive a client that hangs up.
			ctx := context.WithoutCancel(r.Context())
			completed := false
			defer func() {
				if !completed {
					if err := store.Release(ctx, scoped); err != nil {
						log.Warn().Err(err).Msg("failed to release idempotency key")
					}
				}
			}()

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			if status < 200 || status >= 300 {
				return
			}

			resp := usecase.StoredResponse{Status: status, Body: body.Bytes()}
			if err := store.Complete(ctx, scoped, resp, ttl); err != nil {
				log.Warn().Err(err).Msg("failed to store idempotent response")
				return
			}
			completed = true
		})
	}
}
