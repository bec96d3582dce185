// Package scheduler runs periodic reconciliation.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/iho/cashflow/internal/domain"
	"github.com/iho/cashflow/internal/usecase"
)

// Reconciler runs one reconciliation window.
type Reconciler interface {
	Reconcile(ctx context.Context, input usecase.ReconcileInput) (*usecase.ReconciliationResult, error)
}

// ReconcileJob reconciles [today - lookback, today] in UTC calendar days.
type ReconcileJob struct {
	reconciler   Reconciler
	lookbackDays int
	now          func() time.Time
	logger       zerolog.Logger
}

func NewReconcileJob(reconciler Reconciler, lookbackDays int, logger zerolog.Logger) *ReconcileJob {
	if lookbackDays < 0 {
		lookbackDays = 0
	}
	return &ReconcileJob{
		reconciler:   reconciler,
		lookbackDays: lookbackDays,
		now:          time.Now,
		logger:       logger.With().Str("component", "reconcile_job").Logger(),
	}
}

// Window returns the dates the next run will cover.
func (j *ReconcileJob) Window() (start, end domain.CalendarDate) {
	end = domain.DateOf(j.now().UTC())
	return end.AddDays(-j.lookbackDays), end
}

// Run reconciles the current window. A window held by another run is not an
// error; the next tick covers it again.
func (j *ReconcileJob) Run(ctx context.Context) error {
	start, end := j.Window()
	log := j.logger.With().Stringer("start", start).Stringer("end", end).Logger()

	result, err := j.reconciler.Reconcile(ctx, usecase.ReconcileInput{Start: start, End: end})
	if errors.Is(err, domain.ErrReconciliationInProgress) {
		log.Info().Msg("window already being reconciled, skipping")
		return nil
	}
	if err != nil {
		log.Error().Err(err).Msg("scheduled reconciliation failed")
		return fmt.Errorf("reconcile %s..%s: %w", start, end, err)
	}

	log.Info().
		Int("found", result.EntriesFound).
		Int("applied", result.EntriesApplied).
		Int("skipped", result.EntriesSkipped).
		Bool("published", result.Published).
		Msg("scheduled reconciliation finished")
	return nil
}

// Scheduler wraps a cron runner whose specs carry a seconds field.
type Scheduler struct {
	cron   *cron.Cron
	logger zerolog.Logger
}

func New(logger zerolog.Logger) *Scheduler {
	logger = logger.With().Str("component", "scheduler").Logger()
	cronLogger := cronLogger{logger: logger}

	return &Scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLocation(time.UTC),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		logger: logger,
	}
}

// AddReconcileJob registers job on spec. Runs use ctx, so cancelling it
// aborts an in-flight reconciliation.
func (s *Scheduler) AddReconcileJob(ctx context.Context, spec string, job *ReconcileJob) error {
	_, err := s.cron.AddFunc(spec, func() {
		_ = job.Run(ctx)
	})
	if err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	s.logger.Info().Str("spec", spec).Msg("reconcile job scheduled")
	return nil
}

// Start runs the scheduler until ctx is cancelled and then waits for running
// jobs to return.
func (s *Scheduler) Start(ctx context.Context) {
	s.cron.Start()
	s.logger.Info().Msg("scheduler started")

	<-ctx.Done()

	<-s.cron.Stop().Done()
	s.logger.Info().Msg("scheduler stopped")
}

type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
