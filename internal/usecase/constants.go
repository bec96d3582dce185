package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// DefaultCacheTTL is how long a single consolidation read stays cached
	DefaultCacheTTL = 30 * time.Second

	// DefaultReconcileLockTTL bounds how long a crashed run can hold its window
	DefaultReconcileLockTTL = 10 * time.Minute

	// MaxListEntries is the largest page of the period query. Callers follow
	// the page cursor to read the rest.
	MaxListEntries = 5000
)

// Consume outcomes reported to the Recorder.
const (
	OutcomeApplied   = "applied"
	OutcomeDuplicate = "duplicate"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

// Reconciliation statuses reported to the Recorder.
const (
	ReconcileStatusSuccess    = "success"
	ReconcileStatusEmpty      = "empty"
	ReconcileStatusInProgress = "in_progress"
	ReconcileStatusFailed     = "failed"
)

type nopRecorder struct{}

func (nopRecorder) EntryConsumed(string)                {}
func (nopRecorder) ReconciliationRun(string, int, int)   {}
func (nopRecorder) EntriesMarkedConsolidated(int, int64) {}
