package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind tells whether an entry adds to or takes from a merchant's cash.
type EntryKind string

const (
	EntryKindCredit EntryKind = "credit"
	EntryKindDebit  EntryKind = "debit"
)

// IsValid reports whether k is a known kind.
func (k EntryKind) IsValid() bool {
	return k == EntryKindCredit || k == EntryKindDebit
}

// ParseEntryKind normalizes case and validates the kind.
func ParseEntryKind(s string) (EntryKind, error) {
	k := EntryKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.IsValid() {
		return "", ErrInvalidEntryKind
	}
	return k, nil
}

// LedgerEntry is a single credit or debit recorded by the ledger service.
// Consolidated is written only by the mark-consolidated handler.
type LedgerEntry struct {
	RecordedAt   time.Time
	Date         CalendarDate
	ID           string
	Merchant     string
	Description  string
	Kind         EntryKind
	Amount       decimal.Decimal
	Consolidated bool
}

// Validate checks the fields required to fold the entry into an aggregate.
func (e *LedgerEntry) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return ErrEntryIDRequired
	}
	if len(e.ID) > MaxEntryIDLength {
		return ErrEntryIDTooLong
	}
	if err := ValidateMerchant(e.Merchant); err != nil {
		return err
	}
	if e.Date.IsZero() {
		return ErrDateRequired
	}
	if !e.Kind.IsValid() {
		return ErrInvalidEntryKind
	}
	return ValidateAmount(e.Amount)
}

// ConsolidationKey returns the (merchant, date) aggregate this entry belongs to.
func (e *LedgerEntry) ConsolidationKey() ConsolidationKey {
	return ConsolidationKey{Merchant: NormalizeMerchant(e.Merchant), Date: e.Date}
}

// EntryIDs collects the ids of entries in order.
func EntryIDs(entries []*LedgerEntry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return ids
}
