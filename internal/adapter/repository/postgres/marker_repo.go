package postgres

import (
	"context"
	"time"

	"github.com/iho/cashflow/internal/infrastructure/postgres/generated"
	"github.com/iho/cashflow/internal/usecase"
)

// MarkerRepository implements usecase.MarkerRepository on the
// processed_entries table.
type MarkerRepository struct {
	queries *generated.Queries
}

// NewMarkerRepository creates a new MarkerRepository.
func NewMarkerRepository(db generated.DBTX) *MarkerRepository {
	return &MarkerRepository{
		queries: generated.New(db),
	}
}

// Claim inserts the marker inside tx. The primary key turns a second claim
// into a no-op, so zero affected rows means the entry was already processed.
// A concurrent uncommitted claim blocks until its transaction ends.
func (r *MarkerRepository) Claim(ctx context.Context, tx usecase.Transaction, entryID string, processedAt time.Time) (bool, error) {
	pgxTx, err := pgxTxFrom(tx)
	if err != nil {
		return false, err
	}

	affected, err := generated.New(pgxTx).ClaimProcessedEntry(ctx, generated.ClaimProcessedEntryParams{
		EntryID:     entryID,
		ProcessedAt: timeToPgTimestamptz(processedAt),
	})
	if err != nil {
		return false, err
	}

	return affected == 1, nil
}

// Exists reports whether the entry has a committed marker.
func (r *MarkerRepository) Exists(ctx context.Context, entryID string) (bool, error) {
	return r.queries.ProcessedEntryExists(ctx, entryID)
}
