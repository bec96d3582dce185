package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

const (
	pgErrDeadlock             = "40P01"
	pgErrSerializationFailure = "40001"
	pgErrUniqueViolation      = "23505"
)

// RetryPolicy bounds how a unit of work is replayed after a lock conflict.
type RetryPolicy struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// DefaultRetryPolicy suits short consolidation transactions.
var DefaultRetryPolicy = RetryPolicy{
	MaxRetries:      3,
	InitialInterval: 50 * time.Millisecond,
	MaxInterval:     time.Second,
	MaxElapsedTime:  10 * time.Second,
}

// Retrier implements usecase.Retrier. Only conflicts between concurrent
// writers are retried; everything else fails on the first attempt.
type Retrier struct {
	policy RetryPolicy
	logger zerolog.Logger
}

// NewRetrier creates a Retrier with DefaultRetryPolicy.
func NewRetrier(logger zerolog.Logger) *Retrier {
	return NewRetrierWithPolicy(DefaultRetryPolicy, logger)
}

// NewRetrierWithPolicy creates a Retrier with a custom policy.
func NewRetrierWithPolicy(policy RetryPolicy, logger zerolog.Logger) *Retrier {
	return &Retrier{
		policy: policy,
		logger: logger.With().Str("component", "pg_retrier").Logger(),
	}
}

func (r *Retrier) newBackOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.policy.InitialInterval
	b.MaxInterval = r.policy.MaxInterval
	b.MaxElapsedTime = r.policy.MaxElapsedTime
	return backoff.WithContext(backoff.WithMaxRetries(b, r.policy.MaxRetries), ctx)
}

// Retry runs operation until it succeeds, fails with a non-conflict error or
// the policy is exhausted. The last error is returned unwrapped.
func (r *Retrier) Retry(ctx context.Context, operation func() error) error {
	attempt := 0

	return backoff.Retry(func() error {
		attempt++
		err := operation()
		if err == nil {
			return nil
		}

		code, ok := conflictCode(err)
		if !ok {
			return backoff.Permanent(err)
		}

		r.logger.Warn().Err(err).Str("pg_code", code).Int("attempt", attempt).Msg("write conflict, replaying unit of work")
		return err
	}, r.newBackOff(ctx))
}

// conflictCode reports the SQLSTATE of errors caused by a concurrent writer.
// A unique violation shows up when two writers race to create the same
// consolidation row; the replay finds the winner's row.
func conflictCode(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", false
	}
	switch pgErr.Code {
	case pgErrDeadlock, pgErrSerializationFailure, pgErrUniqueViolation:
		return pgErr.Code, true
	}
	return "", false
}
