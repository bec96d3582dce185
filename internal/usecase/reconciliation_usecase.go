package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/cashflow/internal/domain"
)

// ReconciliationUseCase recovers entries whose event never reached the
// consolidation engine by re-reading unconsolidated entries from the ledger.
type ReconciliationUseCase struct {
	txManager         TransactionManager
	consolidationRepo ConsolidationRepository
	markerRepo        MarkerRepository
	ledger            LedgerClient
	publisher         MarkConsolidatedPublisher
	retrier           Retrier
	lock              WindowLock
	cache             ConsolidationCache
	recorder          Recorder
	logger            zerolog.Logger
	lockTTL           time.Duration
}

// ReconciliationOption configures optional collaborators.
type ReconciliationOption func(*ReconciliationUseCase)

// WithWindowLock serialises runs over the same window across processes.
func WithWindowLock(lock WindowLock, ttl time.Duration) ReconciliationOption {
	return func(uc *ReconciliationUseCase) {
		uc.lock = lock
		if ttl > 0 {
			uc.lockTTL = ttl
		}
	}
}

// WithReconciliationCache invalidates cached reads of touched consolidations.
func WithReconciliationCache(cache ConsolidationCache) ReconciliationOption {
	return func(uc *ReconciliationUseCase) {
		uc.cache = cache
	}
}

// WithReconciliationRecorder reports run outcomes.
func WithReconciliationRecorder(r Recorder) ReconciliationOption {
	return func(uc *ReconciliationUseCase) {
		if r != nil {
			uc.recorder = r
		}
	}
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(
	txManager TransactionManager,
	consolidationRepo ConsolidationRepository,
	markerRepo MarkerRepository,
	ledger LedgerClient,
	publisher MarkConsolidatedPublisher,
	retrier Retrier,
	logger zerolog.Logger,
	opts ...ReconciliationOption,
) *ReconciliationUseCase {
	uc := &ReconciliationUseCase{
		txManager:         txManager,
		consolidationRepo: consolidationRepo,
		markerRepo:        markerRepo,
		ledger:            ledger,
		publisher:         publisher,
		retrier:           retrier,
		recorder:          nopRecorder{},
		logger:            logger.With().Str("component", "reconciliation").Logger(),
		lockTTL:           DefaultReconcileLockTTL,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ReconcileInput represents input for a reconciliation run.
type ReconcileInput struct {
	Merchant string
	Start    domain.CalendarDate
	End      domain.CalendarDate
}

// ReconciliationResult represents the outcome of one run.
type ReconciliationResult struct {
	Consolidations []*domain.DailyConsolidation
	Merchant       string
	Start          domain.CalendarDate
	End            domain.CalendarDate
	EntriesFound   int
	EntriesApplied int
	EntriesSkipped int
	Published      bool
}

// Reconcile folds every unconsolidated entry of the window into its daily
// consolidation in a single transaction and then publishes one batched
// mark-consolidated event naming all of them.
//
// Each applied entry gets its processed marker written in the same
// transaction, exactly as on the event path, so a late event for it is a
// no-op. Entries whose marker already exists were folded by the event path;
// they are not applied again but are still named in the event so the ledger flag
// converges. Any error aborts the run without publishing. A failed publish is
// logged and reported through Published; committed state is kept.
func (uc *ReconciliationUseCase) Reconcile(ctx context.Context, input ReconcileInput) (*ReconciliationResult, error) {
	period, err := domain.NewPeriod(input.Start, input.End)
	if err != nil {
		return nil, err
	}

	merchant := normalizeMerchant(input.Merchant)
	if merchant != "" {
		if err := domain.ValidateMerchant(merchant); err != nil {
			return nil, err
		}
	}

	log := uc.logger.With().Stringer("period", period).Str("merchant", merchant).Logger()

	if uc.lock != nil {
		key := WindowLockKey(period, merchant)
		token, acquired, err := uc.lock.Acquire(ctx, key, uc.lockTTL)
		if err != nil {
			uc.recorder.ReconciliationRun(ReconcileStatusFailed, 0, 0)
			return nil, fmt.Errorf("acquire reconciliation lock: %w", err)
		}
		if !acquired {
			uc.recorder.ReconciliationRun(ReconcileStatusInProgress, 0, 0)
			return nil, domain.ErrReconciliationInProgress
		}
		defer func() {
			if err := uc.lock.Release(context.WithoutCancel(ctx), key, token); err != nil {
				log.Warn().Err(err).Msg("failed to release reconciliation lock")
			}
		}()
	}

	result, err := uc.reconcile(ctx, period, merchant, log)
	if err != nil {
		uc.recorder.ReconciliationRun(ReconcileStatusFailed, 0, 0)
		log.Error().Err(err).Msg("reconciliation failed")
		return nil, err
	}

	status := ReconcileStatusSuccess
	if result.EntriesFound == 0 {
		status = ReconcileStatusEmpty
	}
	uc.recorder.ReconciliationRun(status, result.EntriesApplied, result.EntriesSkipped)

	return result, nil
}

func (uc *ReconciliationUseCase) reconcile(ctx context.Context, period domain.Period, merchant string, log zerolog.Logger) (*ReconciliationResult, error) {
	result := &ReconciliationResult{
		Start:    period.Start,
		End:      period.End,
		Merchant: merchant,
	}

	entries, err := uc.ledger.ListUnconsolidated(ctx, period, merchant)
	if err != nil {
		return nil, err
	}

	result.EntriesFound = len(entries)
	if len(entries) == 0 {
		log.Info().Msg("no unconsolidated entries")
		return result, nil
	}

	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("entry %q: %w", e.ID, err)
		}
	}

	var batch *foldResult
	err = uc.retrier.Retry(ctx, func() error {
		var err error
		batch, err = uc.fold(ctx, entries)
		return err
	})
	if err != nil {
		return nil, err
	}

	result.Consolidations = batch.consolidations
	result.EntriesApplied = batch.applied
	result.EntriesSkipped = batch.skipped

	log.Info().
		Int("found", result.EntriesFound).
		Int("applied", result.EntriesApplied).
		Int("skipped", result.EntriesSkipped).
		Int("consolidations", len(result.Consolidations)).
		Msg("reconciliation committed")

	if uc.cache != nil {
		keys := make([]domain.ConsolidationKey, 0, len(batch.consolidations))
		for _, c := range batch.consolidations {
			keys = append(keys, c.Key())
		}
		if err := uc.cache.Delete(ctx, keys...); err != nil {
			log.Warn().Err(err).Msg("failed to invalidate consolidation cache")
		}
	}

	ids := domain.EntryIDs(entries)
	if err := uc.publisher.PublishMarkConsolidated(ctx, domain.NewMarkConsolidatedEvent(ids)); err != nil {
		log.Error().Err(err).Int("count", len(ids)).
			Msg("mark-consolidated publish failed, entries left for the next run")
		return result, nil
	}

	result.Published = true
	return result, nil
}

type foldResult struct {
	consolidations []*domain.DailyConsolidation
	applied        int
	skipped        int
}

// fold claims every entry first, in id order, then locks and updates the
// touched aggregates in key order. Both orders are global, so concurrent
// runs and single-entry consumers cannot deadlock each other.
func (uc *ReconciliationUseCase) fold(ctx context.Context, entries []*domain.LedgerEntry) (*foldResult, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(txCtx)

	sorted := make([]*domain.LedgerEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	now := time.Now().UTC()
	out := &foldResult{}
	groups := make(map[domain.ConsolidationKey][]*domain.LedgerEntry)
	seen := make(map[string]struct{}, len(sorted))

	for _, e := range sorted {
		if _, dup := seen[e.ID]; dup {
			out.skipped++
			continue
		}
		seen[e.ID] = struct{}{}

		claimed, err := uc.markerRepo.Claim(txCtx, tx, e.ID, now)
		if err != nil {
			return nil, err
		}
		if !claimed {
			out.skipped++
			continue
		}

		key := e.ConsolidationKey()
		groups[key] = append(groups[key], e)
	}

	keys := make([]domain.ConsolidationKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	for _, key := range keys {
		consolidation, err := uc.consolidationRepo.GetOrCreateForUpdate(txCtx, tx, key)
		if err != nil {
			return nil, err
		}

		group := groups[key]
		if err := consolidation.ApplyAll(group); err != nil {
			return nil, fmt.Errorf("consolidation %s: %w", key, err)
		}

		if err := uc.consolidationRepo.Update(txCtx, tx, consolidation); err != nil {
			return nil, err
		}

		out.applied += len(group)
		out.consolidations = append(out.consolidations, consolidation)
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return out, nil
}

// WindowLockKey names the advisory lock for a window.
func WindowLockKey(period domain.Period, merchant string) string {
	if merchant == "" {
		merchant = "*"
	}
	return "reconcile:" + period.Start.String() + ":" + period.End.String() + ":" + merchant
}

func normalizeMerchant(merchant string) string {
	return domain.NormalizeMerchant(merchant)
}
