package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/cashflow/internal/usecase"
)

type txBeginner interface {
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

// TxManager implements usecase.TransactionManager on a pgx pool.
// Aggregate rows are serialized with SELECT ... FOR UPDATE, so the pool's
// default isolation is enough unless a caller asks for more.
type TxManager struct {
	pool txBeginner
	opts pgx.TxOptions
}

// TxManagerOption configures a TxManager.
type TxManagerOption func(*TxManager)

// WithIsolation sets the isolation level of every transaction.
func WithIsolation(level pgx.TxIsoLevel) TxManagerOption {
	return func(m *TxManager) {
		m.opts.IsoLevel = level
	}
}

// NewTxManager creates a new TxManager.
func NewTxManager(pool *pgxpool.Pool, opts ...TxManagerOption) *TxManager {
	return newTxManagerWithPool(pool, opts...)
}

func newTxManagerWithPool(pool txBeginner, opts ...TxManagerOption) *TxManager {
	m := &TxManager{pool: pool}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Begin starts a unit of work.
func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	tx, err := m.pool.BeginTx(ctx, m.opts)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &Tx{tx: tx}, nil
}

// Tx wraps a pgx transaction so repositories can recover it.
type Tx struct {
	tx pgx.Tx
}

func (t *Tx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback is a no-op after Commit, so it can always be deferred.
func (t *Tx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return err
}

var errForeignTransaction = errors.New("postgres: transaction was not started by TxManager")

// pgxTxFrom unwraps a Transaction begun by TxManager.
func pgxTxFrom(tx usecase.Transaction) (pgx.Tx, error) {
	t, ok := tx.(*Tx)
	if !ok || t.tx == nil {
		return nil, errForeignTransaction
	}
	return t.tx, nil
}
