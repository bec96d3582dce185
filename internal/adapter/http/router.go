package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/cashflow/internal/adapter/http/handler"
	"github.com/iho/cashflow/internal/adapter/http/middleware"
	"github.com/iho/cashflow/internal/usecase"
)

// RouterConfig holds dependencies for the consolidation service router.
type RouterConfig struct {
	ConsolidationHandler *handler.ConsolidationHandler
	HealthHandler        *handler.HealthHandler
	// RateLimiter throttles the reconcile trigger only; nil disables it.
	RateLimiter *middleware.RateLimiter
	// MetricsHandler defaults to promhttp.Handler().
	MetricsHandler http.Handler
	Logger         zerolog.Logger
}

// NewRouter creates the consolidation service router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := newBaseRouter(cfg.Logger, cfg.HealthHandler, cfg.MetricsHandler)

	r.Route("/api/v1/consolidations", func(r chi.Router) {
		h := cfg.ConsolidationHandler

		r.Group(func(r chi.Router) {
			if cfg.RateLimiter != nil {
				r.Use(cfg.RateLimiter.Limit)
			}
			r.Post("/reconcile", h.Reconcile)
		})

		r.Get("/", h.List)
		r.Delete("/", h.Purge)
		r.Get("/status/{date}", h.Status)
		r.Get("/entries/{entryID}", h.EntryProcessed)
		r.Get("/{merchant}/{date}", h.Get)
	})

	return r
}

// LedgerRouterConfig holds dependencies for the ledger service router.
type LedgerRouterConfig struct {
	EntryHandler   *handler.EntryHandler
	HealthHandler  *handler.HealthHandler
	MetricsHandler http.Handler
	// IdempotencyStore enables Idempotency-Key handling on entry creation;
	// nil disables it.
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	Logger           zerolog.Logger
}

// NewLedgerRouter creates the ledger service router.
func NewLedgerRouter(cfg LedgerRouterConfig) http.Handler {
	r := newBaseRouter(cfg.Logger, cfg.HealthHandler, cfg.MetricsHandler)

	r.Route("/api/v1/entries", func(r chi.Router) {
		create := http.Handler(http.HandlerFunc(cfg.EntryHandler.Create))
		if cfg.IdempotencyStore != nil {
			create = middleware.Idempotency(cfg.IdempotencyStore, cfg.IdempotencyTTL)(create)
		}
		r.Method(http.MethodPost, "/", create)
		r.Get("/", cfg.EntryHandler.List)
	})

	return r
}

func newBaseRouter(logger zerolog.Logger, health *handler.HealthHandler, metrics http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Metrics)

	if health == nil {
		health = handler.NewHealthHandler()
	}
	r.Get("/health", health.Liveness)
	r.Get("/ready", health.Readiness)

	if metrics == nil {
		metrics = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metrics)

	return r
}
