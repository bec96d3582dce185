package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/cashflow/internal/adapter/http"
	"github.com/iho/cashflow/internal/adapter/http/handler"
	"github.com/iho/cashflow/internal/adapter/http/middleware"
	"github.com/iho/cashflow/internal/adapter/ledgerclient"
	"github.com/iho/cashflow/internal/adapter/messaging/rabbitmq"
	postgresRepo "github.com/iho/cashflow/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/cashflow/internal/adapter/repository/redis"
	"github.com/iho/cashflow/internal/infrastructure/config"
	"github.com/iho/cashflow/internal/infrastructure/logger"
	"github.com/iho/cashflow/internal/infrastructure/metrics"
	"github.com/iho/cashflow/internal/infrastructure/postgres"
	"github.com/iho/cashflow/internal/infrastructure/redis"
	"github.com/iho/cashflow/internal/infrastructure/scheduler"
	"github.com/iho/cashflow/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "consolidation"})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("consolidation service failed")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// Workers stop when ctx is cancelled, either by a signal or by a server failure.
	ctx, cancelWorkers := context.WithCancel(ctx)
	defer cancelWorkers()

	// Connect to PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
		return err
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL, cfg.RedisTimeout)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Broker connection is dialled on first use
	broker := rabbitmq.NewConnection(cfg.Broker.RabbitMQURL)
	defer broker.Close()

	m := metrics.New()

	// Initialize repositories and collaborators
	txManager := postgresRepo.NewTxManager(pool)
	consolidationRepo := postgresRepo.NewConsolidationRepository(pool)
	markerRepo := postgresRepo.NewMarkerRepository(pool)
	retrier := postgresRepo.NewRetrier(log)
	cache := redisRepo.NewConsolidationCache(redisClient)
	windowLock := redisRepo.NewWindowLock(redisClient)
	publisher := rabbitmq.NewPublisher(broker, rabbitmq.PublisherConfig{
		EntryQueue:            cfg.Broker.EntryQueue,
		MarkConsolidatedQueue: cfg.Broker.MarkConsolidatedQueue,
		MaxAttempts:           cfg.Broker.PublishMaxAttempts,
		BackoffBase:           cfg.Broker.PublishBackoffBase,
	}, log, rabbitmq.WithPublishRecorder(m))
	ledger := ledgerclient.New(ledgerclient.Config{
		BaseURL:  cfg.LedgerAPIURL,
		Timeout:  cfg.LedgerAPITimeout,
		PageSize: cfg.LedgerAPIPageSize,
	}, log)

	// Initialize use cases
	consolidationUC := usecase.NewConsolidationUseCase(txManager, consolidationRepo, markerRepo, publisher, retrier, log,
		usecase.WithConsolidationCache(cache, cfg.CacheTTL),
		usecase.WithConsolidationRecorder(m),
	)
	reconciliationUC := usecase.NewReconciliationUseCase(txManager, consolidationRepo, markerRepo, ledger, publisher, retrier, log,
		usecase.WithWindowLock(windowLock, cfg.ReconcileLockTTL),
		usecase.WithReconciliationCache(cache),
		usecase.WithReconciliationRecorder(m),
	)

	// Background workers
	consumer := rabbitmq.NewConsumer(broker, rabbitmq.ConsumerConfig{
		Queue:    cfg.Broker.EntryQueue,
		Prefetch: cfg.Broker.ConsumerPrefetch,
	}, rabbitmq.NewEntryEventHandler(consolidationUC), log)

	sched := scheduler.New(log)
	job := scheduler.NewReconcileJob(reconciliationUC, cfg.ReconcileLookbackDays, log)
	if err := sched.AddReconcileJob(ctx, cfg.ReconcileCron, job); err != nil {
		return err
	}

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		if err := consumer.Start(ctx); err != nil {
			log.Error().Err(err).Msg("entry consumer stopped")
		}
	}()
	go func() {
		defer wg.Done()
		sched.Start(ctx)
	}()
	go func() {
		defer wg.Done()
		rateLimiter.StartCleanup(ctx, 10*time.Minute, time.Hour)
	}()

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		ConsolidationHandler: handler.NewConsolidationHandler(consolidationUC, reconciliationUC),
		HealthHandler: handler.NewHealthHandler(
			handler.Check{Name: "postgres", Ping: pool.Ping},
			handler.Check{Name: "redis", Ping: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }},
		),
		RateLimiter: rateLimiter,
		Logger:      log,
	})

	server := newHTTPServer(cfg.HTTP, router)
	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTP.Port).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-serverErr:
		log.Error().Err(runErr).Msg("server failed")
	}

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	cancelWorkers()
	wg.Wait()
	consolidationUC.Wait()

	log.Info().Msg("server stopped")
	return runErr
}

func serverAddr(port string) string {
	return fmt.Sprintf(":%s", port)
}

func newHTTPServer(cfg config.HTTP, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         serverAddr(cfg.Port),
		Handler:      h,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}
