package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/cashflow/internal/domain"
)

// ConsolidationUseCase folds single entry events into daily consolidations
// and serves consolidation reads.
type ConsolidationUseCase struct {
	txManager         TransactionManager
	consolidationRepo ConsolidationRepository
	markerRepo        MarkerRepository
	publisher         MarkConsolidatedPublisher
	retrier           Retrier
	cache             ConsolidationCache
	recorder          Recorder
	logger            zerolog.Logger
	cacheTTL          time.Duration
	inflight          background
}

// ConsolidationOption configures optional collaborators.
type ConsolidationOption func(*ConsolidationUseCase)

// WithConsolidationCache enables cache-aside reads for single consolidations.
func WithConsolidationCache(cache ConsolidationCache, ttl time.Duration) ConsolidationOption {
	return func(uc *ConsolidationUseCase) {
		uc.cache = cache
		if ttl > 0 {
			uc.cacheTTL = ttl
		}
	}
}

// WithConsolidationRecorder reports consume outcomes.
func WithConsolidationRecorder(r Recorder) ConsolidationOption {
	return func(uc *ConsolidationUseCase) {
		if r != nil {
			uc.recorder = r
		}
	}
}

// NewConsolidationUseCase creates a new ConsolidationUseCase.
func NewConsolidationUseCase(
	txManager TransactionManager,
	consolidationRepo ConsolidationRepository,
	markerRepo MarkerRepository,
	publisher MarkConsolidatedPublisher,
	retrier Retrier,
	logger zerolog.Logger,
	opts ...ConsolidationOption,
) *ConsolidationUseCase {
	uc := &ConsolidationUseCase{
		txManager:         txManager,
		consolidationRepo: consolidationRepo,
		markerRepo:        markerRepo,
		publisher:         publisher,
		retrier:           retrier,
		recorder:          nopRecorder{},
		logger:            logger.With().Str("component", "consolidation").Logger(),
		cacheTTL:          DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Consume folds one entry into its daily consolidation exactly once.
//
// It returns true when the entry changed the aggregate and false when the entry
// had already been processed. Validation errors are permanent; the caller must
// not redeliver the message. The mark-consolidated event is published in the
// background after commit and its outcome never affects the result.
func (uc *ConsolidationUseCase) Consume(ctx context.Context, entry *domain.LedgerEntry) (bool, error) {
	if err := entry.Validate(); err != nil {
		uc.recorder.EntryConsumed(OutcomeRejected)
		return false, err
	}
	if merchant := normalizeMerchant(entry.Merchant); merchant != entry.Merchant {
		trimmed := *entry
		trimmed.Merchant = merchant
		entry = &trimmed
	}

	var applied bool
	err := uc.retrier.Retry(ctx, func() error {
		var err error
		applied, err = uc.applyEntry(ctx, entry)
		return err
	})
	if err != nil {
		if domain.IsValidation(err) {
			uc.recorder.EntryConsumed(OutcomeRejected)
		} else {
			uc.recorder.EntryConsumed(OutcomeFailed)
		}
		return false, err
	}

	log := uc.logger.With().
		Str("entry_id", entry.ID).
		Str("merchant", entry.Merchant).
		Stringer("date", entry.Date).
		Logger()

	if !applied {
		uc.recorder.EntryConsumed(OutcomeDuplicate)
		log.Debug().Msg("entry already consolidated, skipping")
		return false, nil
	}

	uc.recorder.EntryConsumed(OutcomeApplied)
	log.Info().Str("kind", string(entry.Kind)).Str("amount", entry.Amount.String()).Msg("entry consolidated")

	uc.invalidate(ctx, entry.ConsolidationKey())
	uc.inflight.Go(ctx, func(ctx context.Context) {
		uc.publishMarked(ctx, []string{entry.ID})
	})

	return true, nil
}

func (uc *ConsolidationUseCase) applyEntry(ctx context.Context, entry *domain.LedgerEntry) (bool, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(txCtx)

	claimed, err := uc.markerRepo.Claim(txCtx, tx, entry.ID, time.Now().UTC())
	if err != nil {
		return false, err
	}
	if !claimed {
		return false, nil
	}

	consolidation, err := uc.consolidationRepo.GetOrCreateForUpdate(txCtx, tx, entry.ConsolidationKey())
	if err != nil {
		return false, err
	}

	if err := consolidation.Apply(entry); err != nil {
		return false, err
	}

	if err := uc.consolidationRepo.Update(txCtx, tx, consolidation); err != nil {
		return false, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return false, err
	}

	return true, nil
}

func (uc *ConsolidationUseCase) publishMarked(ctx context.Context, ids []string) {
	if err := uc.publisher.PublishMarkConsolidated(ctx, domain.NewMarkConsolidatedEvent(ids)); err != nil {
		uc.logger.Error().Err(err).Strs("entry_ids", ids).
			Msg("mark-consolidated publish failed, entries left for reconciliation")
	}
}

// Wait blocks until background publishes have finished.
func (uc *ConsolidationUseCase) Wait() {
	uc.inflight.Wait()
}

func (uc *ConsolidationUseCase) invalidate(ctx context.Context, keys ...domain.ConsolidationKey) {
	if uc.cache == nil || len(keys) == 0 {
		return
	}
	if err := uc.cache.Delete(ctx, keys...); err != nil {
		uc.logger.Warn().Err(err).Msg("failed to invalidate consolidation cache")
	}
}

// GetConsolidation returns the consolidation for one merchant and day.
func (uc *ConsolidationUseCase) GetConsolidation(ctx context.Context, merchant string, date domain.CalendarDate) (*domain.DailyConsolidation, error) {
	if err := domain.ValidateMerchant(merchant); err != nil {
		return nil, err
	}
	if date.IsZero() {
		return nil, domain.ErrDateRequired
	}

	key := domain.ConsolidationKey{Merchant: normalizeMerchant(merchant), Date: date}

	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, key)
		if err != nil {
			uc.logger.Warn().Err(err).Stringer("key", key).Msg("consolidation cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	consolidation, err := uc.consolidationRepo.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, consolidation, uc.cacheTTL); err != nil {
			uc.logger.Warn().Err(err).Stringer("key", key).Msg("consolidation cache write failed")
		}
	}

	return consolidation, nil
}

// IsProcessed reports whether the entry has already been folded into its
// aggregate by either the event path or a reconciliation.
func (uc *ConsolidationUseCase) IsProcessed(ctx context.Context, entryID string) (bool, error) {
	if strings.TrimSpace(entryID) == "" {
		return false, domain.ErrEntryIDRequired
	}
	return uc.markerRepo.Exists(ctx, entryID)
}

// ListConsolidationsInput represents input for listing consolidations.
type ListConsolidationsInput struct {
	Merchant string
	Start    domain.CalendarDate
	End      domain.CalendarDate
}

// ListConsolidations lists consolidations ordered by date, then merchant.
func (uc *ConsolidationUseCase) ListConsolidations(ctx context.Context, input ListConsolidationsInput) ([]*domain.DailyConsolidation, error) {
	filter, err := newConsolidationFilter(input.Start, input.End, input.Merchant)
	if err != nil {
		return nil, err
	}
	return uc.consolidationRepo.List(ctx, filter)
}

// PurgeConsolidations deletes consolidations in the period. It is the only
// path that removes an aggregate. Markers are kept, so purged entries are
// never folded again by the event path.
func (uc *ConsolidationUseCase) PurgeConsolidations(ctx context.Context, input ListConsolidationsInput) (int64, error) {
	filter, err := newConsolidationFilter(input.Start, input.End, input.Merchant)
	if err != nil {
		return 0, err
	}

	existing, err := uc.consolidationRepo.List(ctx, filter)
	if err != nil {
		return 0, err
	}

	deleted, err := uc.consolidationRepo.Delete(ctx, filter)
	if err != nil {
		return 0, err
	}

	keys := make([]domain.ConsolidationKey, 0, len(existing))
	for _, c := range existing {
		keys = append(keys, c.Key())
	}
	uc.invalidate(ctx, keys...)

	uc.logger.Warn().
		Stringer("period", filter.Period).
		Str("merchant", filter.Merchant).
		Int64("deleted", deleted).
		Msg("consolidations purged")

	return deleted, nil
}

// DailyStatus summarises every consolidation of one day.
type DailyStatus struct {
	LastUpdatedAt *time.Time
	Date          domain.CalendarDate
	TotalCredits  decimal.Decimal
	TotalDebits   decimal.Decimal
	Merchants     int
	CreditCount   int64
	DebitCount    int64
}

// NetBalance is derived from the totals.
func (s *DailyStatus) NetBalance() decimal.Decimal {
	return s.TotalCredits.Sub(s.TotalDebits)
}

// GetDailyStatus aggregates all merchants' consolidations for a day.
func (uc *ConsolidationUseCase) GetDailyStatus(ctx context.Context, date domain.CalendarDate) (*DailyStatus, error) {
	consolidations, err := uc.ListConsolidations(ctx, ListConsolidationsInput{Start: date, End: date})
	if err != nil {
		return nil, err
	}

	status := &DailyStatus{
		Date:         date,
		TotalCredits: decimal.Zero,
		TotalDebits:  decimal.Zero,
		Merchants:    len(consolidations),
	}

	for _, c := range consolidations {
		status.TotalCredits = status.TotalCredits.Add(c.TotalCredits)
		status.TotalDebits = status.TotalDebits.Add(c.TotalDebits)
		status.CreditCount += c.CreditCount
		status.DebitCount += c.DebitCount

		if status.LastUpdatedAt == nil || c.LastUpdatedAt.After(*status.LastUpdatedAt) {
			at := c.LastUpdatedAt
			status.LastUpdatedAt = &at
		}
	}

	return status, nil
}

func newConsolidationFilter(start, end domain.CalendarDate, merchant string) (ConsolidationFilter, error) {
	period, err := domain.NewPeriod(start, end)
	if err != nil {
		return ConsolidationFilter{}, err
	}
	return ConsolidationFilter{Period: period, Merchant: normalizeMerchant(merchant)}, nil
}

