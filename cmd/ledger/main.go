package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/cashflow/internal/adapter/http"
	"github.com/iho/cashflow/internal/adapter/http/handler"
	"github.com/iho/cashflow/internal/adapter/messaging/rabbitmq"
	mongoRepo "github.com/iho/cashflow/internal/adapter/repository/mongo"
	redisRepo "github.com/iho/cashflow/internal/adapter/repository/redis"
	"github.com/iho/cashflow/internal/infrastructure/config"
	"github.com/iho/cashflow/internal/infrastructure/logger"
	"github.com/iho/cashflow/internal/infrastructure/metrics"
	"github.com/iho/cashflow/internal/infrastructure/mongo"
	"github.com/iho/cashflow/internal/infrastructure/redis"
	"github.com/iho/cashflow/internal/usecase"
)

func main() {
	cfg, err := config.LoadLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "ledger"})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("ledger service failed")
	}
}

func run(ctx context.Context, cfg *config.LedgerConfig, log zerolog.Logger) error {
	// Workers stop when ctx is cancelled, either by a signal or by a server failure.
	ctx, cancelWorkers := context.WithCancel(ctx)
	defer cancelWorkers()

	// Connect to MongoDB
	client, err := mongo.NewClient(ctx, cfg.MongoURL, cfg.MongoTimeout)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from mongo")
		}
	}()
	log.Info().Str("database", cfg.MongoDatabase).Msg("connected to mongo")

	entryRepo := mongoRepo.NewEntryRepository(client.Database(cfg.MongoDatabase).Collection(mongoRepo.EntriesCollection))
	if err := entryRepo.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	var idempotency usecase.IdempotencyStore
	checks := []handler.Check{{
		Name: "mongo",
		Ping: func(ctx context.Context) error { return client.Ping(ctx, nil) },
	}}
	if cfg.RedisURL != "" {
		redisClient, err := redis.NewClient(ctx, cfg.RedisURL, cfg.RedisTimeout)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer redisClient.Close()
		log.Info().Msg("connected to redis")

		idempotency = redisRepo.NewIdempotencyStore(redisClient)
		checks = append(checks, handler.Check{
			Name: "redis",
			Ping: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
	}

	broker := rabbitmq.NewConnection(cfg.Broker.RabbitMQURL)
	defer broker.Close()

	m := metrics.New()

	publisher := rabbitmq.NewPublisher(broker, rabbitmq.PublisherConfig{
		EntryQueue:            cfg.Broker.EntryQueue,
		MarkConsolidatedQueue: cfg.Broker.MarkConsolidatedQueue,
		MaxAttempts:           cfg.Broker.PublishMaxAttempts,
		BackoffBase:           cfg.Broker.PublishBackoffBase,
	}, log, rabbitmq.WithPublishRecorder(m))

	ledgerUC := usecase.NewLedgerUseCase(entryRepo, publisher, mongoRepo.NewULIDGenerator(), log)
	markUC := usecase.NewMarkConsolidatedUseCase(entryRepo, m, log)

	consumer := rabbitmq.NewConsumer(broker, rabbitmq.ConsumerConfig{
		Queue:    cfg.Broker.MarkConsolidatedQueue,
		Prefetch: cfg.Broker.ConsumerPrefetch,
	}, rabbitmq.NewMarkConsolidatedEventHandler(markUC), log)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := consumer.Start(ctx); err != nil {
			log.Error().Err(err).Msg("mark-consolidated consumer stopped")
		}
	}()

	router := httpAdapter.NewLedgerRouter(httpAdapter.LedgerRouterConfig{
		EntryHandler:     handler.NewEntryHandler(ledgerUC),
		HealthHandler:    handler.NewHealthHandler(checks...),
		IdempotencyStore: idempotency,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		Logger:           log,
	})

	server := &http.Server{
		Addr:         ledgerAddr(cfg),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("starting ledger server")
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

	log.Info().Msg("shutting down ledger server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	cancelWorkers()
	wg.Wait()
	// Entries accepted before shutdown still get their event published.
	ledgerUC.Wait()

	log.Info().Msg("ledger server stopped")
	return runErr
}

// ledgerAddr prefers LEDGER_HTTP_PORT over the shared HTTP_PORT.
func ledgerAddr(cfg *config.LedgerConfig) string {
	port := cfg.Port
	if port == "" {
		port = cfg.HTTP.Port
	}
	return ":" + port
}
