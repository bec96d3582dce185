package middleware

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_LimitsPerClient(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/consolidations/reconcile", nil)
		req.Header.Set("X-Forwarded-For", ip+", 10.0.0.1")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	for i := 0; i < 2; i++ {
		if code := send("1.1.1.1"); code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, code)
		}
	}
	if code := send("1.1.1.1"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", code)
	}
	if code := send("2.2.2.2"); code != http.StatusOK {
		t.Fatalf("other client should not be limited, got %d", code)
	}
}

func TestRateLimiter_RetryAfter(t *testing.T) {
	rl := NewRateLimiter(0.25, 1)
	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "4", rr.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, rr.Body.String())
}

func TestRateLimiter_CleanupDropsIdleClients(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.getLimiter("a")
	now = now.Add(time.Hour)
	rl.getLimiter("b")

	if removed := rl.CleanupLimiters(30 * time.Minute); removed != 1 {
		t.Fatalf("expected 1 limiter removed, got %d", removed)
	}
	if _, ok := rl.limiters["b"]; !ok {
		t.Fatalf("recent client was removed")
	}
}

func TestGetIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	if got := getIP(req); got != "192.0.2.1" {
		t.Fatalf("getIP() = %q", got)
	}

	req.Header.Set("X-Real-IP", "198.51.100.7")
	if got := getIP(req); got != "198.51.100.7" {
		t.Fatalf("getIP() = %q", got)
	}
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	handler := Recovery(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/explode", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if !strings.Contains(buf.String(), "panic recovered") || !strings.Contains(buf.String(), "boom") {
		t.Fatalf("panic was not logged: %s", buf.String())
	}
}

func TestRecovery_UsesRequestLogger(t *testing.T) {
	var base, scoped bytes.Buffer

	handler := Recovery(zerolog.New(&base))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(errors.New("nil merchant"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/explode", nil)
	req = req.WithContext(zerolog.New(&scoped).With().Str("request_id", "req-1").Logger().WithContext(req.Context()))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rr.Body.String())
	assert.Empty(t, base.String())
	assert.Contains(t, scoped.String(), `"request_id":"req-1"`)
}

func TestRecovery_ReraisesAbortHandler(t *testing.T) {
	handler := Recovery(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestRequestLogger(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		status int
		level  string
	}{
		{name: "server error", path: "/api/v1/consolidations", status: http.StatusBadGateway, level: "error"},
		{name: "client error", path: "/api/v1/consolidations", status: http.StatusNotFound, level: "warn"},
		{name: "success", path: "/api/v1/consolidations", status: http.StatusOK, level: "info"},
		{name: "probe", path: "/health", status: http.StatusOK, level: "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			var ctxLogger *zerolog.Logger

			handler := RequestLogger(zerolog.New(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctxLogger = zerolog.Ctx(r.Context())
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("{}"))
			}))
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))

			out := buf.String()
			assert.Contains(t, out, fmt.Sprintf(`"status":%d`, tt.status))
			assert.Contains(t, out, fmt.Sprintf(`"level":"%s"`, tt.level))
			assert.Contains(t, out, `"bytes":2`)
			assert.Contains(t, out, `"route":"unmatched"`)
			require.NotNil(t, ctxLogger)
			assert.NotEqual(t, zerolog.Disabled, ctxLogger.GetLevel())
		})
	}
}

func TestRequestLogger_DefaultsStatusToOK(t *testing.T) {
	var buf bytes.Buffer
	handler := RequestLogger(zerolog.New(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/entries", nil))

	assert.Contains(t, buf.String(), `"status":200`)
}
