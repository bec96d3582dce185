package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/cashflow/internal/domain"
)

// LedgerUseCase records entries and answers period queries for the ledger service.
type LedgerUseCase struct {
	entryRepo EntryRepository
	publisher EntryPublisher
	idGen     IDGenerator
	logger    zerolog.Logger
	inflight  background
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(entryRepo EntryRepository, publisher EntryPublisher, idGen IDGenerator, logger zerolog.Logger) *LedgerUseCase {
	return &LedgerUseCase{
		entryRepo: entryRepo,
		publisher: publisher,
		idGen:     idGen,
		logger:    logger.With().Str("component", "ledger").Logger(),
	}
}

// CreateEntryInput represents input for recording an entry.
type CreateEntryInput struct {
	Date        domain.CalendarDate
	Merchant    string
	Kind        string
	Description string
	Amount      decimal.Decimal
}

// CreateEntry stores a new unconsolidated entry and publishes its event in the
// background. A failed publish never fails the request; reconciliation picks
// the entry up later.
func (uc *LedgerUseCase) CreateEntry(ctx context.Context, input CreateEntryInput) (*domain.LedgerEntry, error) {
	kind, err := domain.ParseEntryKind(input.Kind)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidateDescription(input.Description); err != nil {
		return nil, err
	}

	entry := &domain.LedgerEntry{
		ID:          uc.idGen.Generate(),
		Merchant:    normalizeMerchant(input.Merchant),
		Amount:      input.Amount,
		Kind:        kind,
		Date:        input.Date,
		Description: input.Description,
		RecordedAt:  time.Now().UTC(),
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if err := uc.entryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	event := domain.NewEntryEvent(entry)
	uc.inflight.Go(ctx, func(ctx context.Context) {
		if err := uc.publisher.PublishEntry(ctx, event); err != nil {
			uc.logger.Error().Err(err).Str("entry_id", event.ID).
				Msg("entry event publish failed, entry left for reconciliation")
		}
	})

	return entry, nil
}

// ListEntriesInput represents input for the period query. AfterID and Limit
// page through the result; a zero Limit means MaxListEntries.
type ListEntriesInput struct {
	Consolidated *bool
	Merchant     string
	AfterID      string
	Start        domain.CalendarDate
	End          domain.CalendarDate
	Limit        int
}

// EntryPage is one page of the period query. NextAfterID is empty on the
// last page.
type EntryPage struct {
	Entries     []*domain.LedgerEntry
	NextAfterID string
}

// ListEntries returns one page of entries of the period ordered by id. Ids are
// ULIDs, so the order follows recording time.
func (uc *LedgerUseCase) ListEntries(ctx context.Context, input ListEntriesInput) (*EntryPage, error) {
	period, err := domain.NewPeriod(input.Start, input.End)
	if err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit <= 0 || limit > MaxListEntries {
		limit = MaxListEntries
	}

	// One extra row tells whether another page follows.
	entries, err := uc.entryRepo.List(ctx, EntryFilter{
		Period:       period,
		Merchant:     normalizeMerchant(input.Merchant),
		Consolidated: input.Consolidated,
		AfterID:      input.AfterID,
		Limit:        limit + 1,
	})
	if err != nil {
		return nil, err
	}

	page := &EntryPage{Entries: entries}
	if len(entries) > limit {
		page.Entries = entries[:limit]
		page.NextAfterID = entries[limit-1].ID
	}
	return page, nil
}

// Wait blocks until background publishes have finished.
func (uc *LedgerUseCase) Wait() {
	uc.inflight.Wait()
}
