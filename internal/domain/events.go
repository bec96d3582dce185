package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryEvent is published by the ledger once per recorded entry.
type EntryEvent struct {
	RecordedAt  time.Time       `json:"recordedAt"`
	Date        CalendarDate    `json:"date"`
	ID          string          `json:"id"`
	Merchant    string          `json:"merchant"`
	Kind        string          `json:"kind"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
}

// NewEntryEvent builds the wire event for an entry.
func NewEntryEvent(e *LedgerEntry) EntryEvent {
	return EntryEvent{
		ID:          e.ID,
		Merchant:    e.Merchant,
		Amount:      e.Amount,
		Kind:        string(e.Kind),
		Date:        e.Date,
		Description: e.Description,
		RecordedAt:  e.RecordedAt,
	}
}

// ToEntry converts the event to a validated entry with its merchant trimmed.
func (ev EntryEvent) ToEntry() (*LedgerEntry, error) {
	kind, err := ParseEntryKind(ev.Kind)
	if err != nil {
		return nil, err
	}

	entry := &LedgerEntry{
		ID:          ev.ID,
		Merchant:    NormalizeMerchant(ev.Merchant),
		Amount:      ev.Amount,
		Kind:        kind,
		Date:        ev.Date,
		Description: ev.Description,
		RecordedAt:  ev.RecordedAt,
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return entry, nil
}

// MarkConsolidatedEvent tells the ledger that the listed entries have been
// folded into their daily consolidations.
type MarkConsolidatedEvent struct {
	ProcessedAt time.Time `json:"processedAt"`
	EntryIDs    []string  `json:"entryIds"`
}

// NewMarkConsolidatedEvent stamps the event with the current time.
func NewMarkConsolidatedEvent(ids []string) MarkConsolidatedEvent {
	return MarkConsolidatedEvent{
		EntryIDs:    ids,
		ProcessedAt: time.Now().UTC(),
	}
}
