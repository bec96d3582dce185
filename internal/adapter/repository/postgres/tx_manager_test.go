package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/cashflow/internal/usecase/mocks"
)

func TestTxManager_BeginAndCommit(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectBegin()
	mockPool.ExpectCommit()

	tx, err := newTxManagerWithPool(mockPool).Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, tx.Commit(context.Background()))

	assertExpectations(t, mockPool)
}

func TestTxManager_BeginError(t *testing.T) {
	mockPool := newMockPool(t)
	mockErr := errors.New("too many connections")
	mockPool.ExpectBegin().WillReturnError(mockErr)

	tx, err := newTxManagerWithPool(mockPool).Begin(context.Background())
	require.ErrorIs(t, err, mockErr)
	assert.Nil(t, tx)
}

func TestTxManager_WithIsolation(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.Serializable})
	mockPool.ExpectRollback()

	manager := newTxManagerWithPool(mockPool, WithIsolation(pgx.Serializable))
	tx, err := manager.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, tx.Rollback(context.Background()))

	assertExpectations(t, mockPool)
}

func TestTx_RollbackAfterCommitIsNoop(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectBegin()
	mockPool.ExpectCommit()
	mockPool.ExpectRollback().WillReturnError(pgx.ErrTxClosed)

	tx, err := newTxManagerWithPool(mockPool).Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, tx.Commit(context.Background()))
	require.NoError(t, tx.Rollback(context.Background()))

	assertExpectations(t, mockPool)
}

func TestPgxTxFrom_RejectsForeignTransaction(t *testing.T) {
	_, err := pgxTxFrom(&mocks.MockTransaction{})
	require.ErrorIs(t, err, errForeignTransaction)

	_, err = pgxTxFrom(&Tx{})
	require.ErrorIs(t, err, errForeignTransaction)
}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func assertExpectations(t *testing.T, pool pgxmock.PgxPoolIface) {
	t.Helper()
	if err := pool.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations were not met: %v", err)
	}
}
