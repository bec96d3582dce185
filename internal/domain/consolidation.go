package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConsolidationKey is the natural key of a daily consolidation.
type ConsolidationKey struct {
	Merchant string
	Date     CalendarDate
}

func (k ConsolidationKey) String() string {
	return k.Merchant + "@" + k.Date.String()
}

// Less orders keys by date, then merchant. Rows are always locked in this order.
func (k ConsolidationKey) Less(other ConsolidationKey) bool {
	if k.Date != other.Date {
		return k.Date.Before(other.Date)
	}
	return k.Merchant < other.Merchant
}

// DailyConsolidation aggregates the credits and debits of one merchant on one day.
// Totals only ever grow; there is no reversal path.
type DailyConsolidation struct {
	LastUpdatedAt time.Time
	Date          CalendarDate
	Merchant      string
	TotalCredits  decimal.Decimal
	TotalDebits   decimal.Decimal
	ID            int64
	CreditCount   int64
	DebitCount    int64
}

// NewDailyConsolidation creates an empty aggregate for (merchant, date).
func NewDailyConsolidation(merchant string, date CalendarDate) (*DailyConsolidation, error) {
	if err := ValidateMerchant(merchant); err != nil {
		return nil, err
	}
	if date.IsZero() {
		return nil, ErrDateRequired
	}

	return &DailyConsolidation{
		Merchant:      merchant,
		Date:          date,
		TotalCredits:  decimal.Zero,
		TotalDebits:   decimal.Zero,
		LastUpdatedAt: time.Now().UTC(),
	}, nil
}

// Key returns the natural key.
func (c *DailyConsolidation) Key() ConsolidationKey {
	return ConsolidationKey{Merchant: c.Merchant, Date: c.Date}
}

// NetBalance is always derived from the totals.
func (c *DailyConsolidation) NetBalance() decimal.Decimal {
	return c.TotalCredits.Sub(c.TotalDebits)
}

// ApplyCredit adds a positive amount to the credit side.
func (c *DailyConsolidation) ApplyCredit(amount decimal.Decimal) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}

	c.TotalCredits = c.TotalCredits.Add(amount)
	c.CreditCount++
	c.LastUpdatedAt = time.Now().UTC()
	return nil
}

// ApplyDebit adds a positive amount to the debit side.
func (c *DailyConsolidation) ApplyDebit(amount decimal.Decimal) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}

	c.TotalDebits = c.TotalDebits.Add(amount)
	c.DebitCount++
	c.LastUpdatedAt = time.Now().UTC()
	return nil
}

// Apply dispatches on the entry kind.
func (c *DailyConsolidation) Apply(entry *LedgerEntry) error {
	switch entry.Kind {
	case EntryKindCredit:
		return c.ApplyCredit(entry.Amount)
	case EntryKindDebit:
		return c.ApplyDebit(entry.Amount)
	default:
		return ErrInvalidEntryKind
	}
}

// ApplyAll folds entries in the given order. Sums commute, so order does not
// change the result. On error the aggregate may be partially updated and must
// be discarded with its unit of work.
func (c *DailyConsolidation) ApplyAll(entries []*LedgerEntry) error {
	for _, e := range entries {
		if err := c.Apply(e); err != nil {
			return err
		}
	}
	return nil
}

// ProcessedEntryMarker proves an entry has been folded into its aggregate.
// Markers are inserted once and never updated or deleted.
type ProcessedEntryMarker struct {
	ProcessedAt time.Time
	EntryID     string
}
