package usecase

import (
	"context"
	"time"

	"github.com/iho/cashflow/internal/domain"
)

// ConsolidationFilter selects daily consolidations by period and, optionally, merchant.
type ConsolidationFilter struct {
	Merchant string
	Period   domain.Period
}

// EntryFilter selects ledger entries. A nil Consolidated matches both states.
// Results are ordered by id; AfterID skips every id up to and including it.
type EntryFilter struct {
	Consolidated *bool
	Merchant     string
	AfterID      string
	Period       domain.Period
	Limit        int
}

// ConsolidationRepository defines data access for daily consolidations.
type ConsolidationRepository interface {
	// GetOrCreateForUpdate returns the row for key locked until tx ends,
	// inserting an empty aggregate first when none exists.
	GetOrCreateForUpdate(ctx context.Context, tx Transaction, key domain.ConsolidationKey) (*domain.DailyConsolidation, error)
	Update(ctx context.Context, tx Transaction, consolidation *domain.DailyConsolidation) error
	Get(ctx context.Context, key domain.ConsolidationKey) (*domain.DailyConsolidation, error)
	List(ctx context.Context, filter ConsolidationFilter) ([]*domain.DailyConsolidation, error)
	Delete(ctx context.Context, filter ConsolidationFilter) (int64, error)
}

// MarkerRepository defines data access for processed entry markers.
type MarkerRepository interface {
	// Claim inserts the marker unless it exists. It returns false when the
	// entry was already processed.
	Claim(ctx context.Context, tx Transaction, entryID string, processedAt time.Time) (bool, error)
	Exists(ctx context.Context, entryID string) (bool, error)
}

// EntryRepository defines data access for ledger entries. Owned by the ledger service.
type EntryRepository interface {
	Create(ctx context.Context, entry *domain.LedgerEntry) error
	List(ctx context.Context, filter EntryFilter) ([]*domain.LedgerEntry, error)
	// MarkConsolidated flags the given entries and returns how many matched.
	MarkConsolidated(ctx context.Context, ids []string) (int64, error)
}

// LedgerClient queries the ledger service for entries still awaiting consolidation.
type LedgerClient interface {
	ListUnconsolidated(ctx context.Context, period domain.Period, merchant string) ([]*domain.LedgerEntry, error)
}

// MarkConsolidatedPublisher notifies the ledger that entries were folded in.
type MarkConsolidatedPublisher interface {
	PublishMarkConsolidated(ctx context.Context, event domain.MarkConsolidatedEvent) error
}

// EntryPublisher emits one event per recorded ledger entry.
type EntryPublisher interface {
	PublishEntry(ctx context.Context, event domain.EntryEvent) error
}

// WindowLock is an advisory lock over a reconciliation window.
type WindowLock interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (token string, acquired bool, err error)
	Release(ctx context.Context, key, token string) error
}

// ConsolidationCache caches single-key consolidation reads.
// Get returns nil, nil on a miss.
type ConsolidationCache interface {
	Get(ctx context.Context, key domain.ConsolidationKey) (*domain.DailyConsolidation, error)
	Set(ctx context.Context, consolidation *domain.DailyConsolidation, ttl time.Duration) error
	Delete(ctx context.Context, keys ...domain.ConsolidationKey) error
}

// Recorder receives operational counters.
type Recorder interface {
	EntryConsumed(outcome string)
	ReconciliationRun(status string, applied, skipped int)
	EntriesMarkedConsolidated(requested int, matched int64)
}

// Retrier re-runs an operation on transient storage errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// StoredResponse is the replayable outcome of an idempotent request.
type StoredResponse struct {
	Status int    `json:"status"`
	Body   []byte `json:"body"`
}

// IdempotencyStore records which Idempotency-Key values have been seen.
type IdempotencyStore interface {
	// Claim reserves key for the caller. When the key is already taken it
	// returns the stored response, or nil while the first request runs.
	Claim(ctx context.Context, key string, ttl time.Duration) (claimed bool, stored *StoredResponse, err error)
	Complete(ctx context.Context, key string, resp StoredResponse, ttl time.Duration) error
	// Release forgets a claim whose request failed so the client may retry.
	Release(ctx context.Context, key string) error
}
