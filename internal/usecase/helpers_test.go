package usecase_test

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/cashflow/internal/domain"
)

var (
	jan1 = domain.MustDate(2024, time.January, 1)
	jan2 = domain.MustDate(2024, time.January, 2)
)

func credit(id, merchant string, amount int64, date domain.CalendarDate) *domain.LedgerEntry {
	return &domain.LedgerEntry{
		ID:         id,
		Merchant:   merchant,
		Kind:       domain.EntryKindCredit,
		Amount:     decimal.NewFromInt(amount),
		Date:       date,
		RecordedAt: date.Time().Add(9 * time.Hour),
	}
}

func debit(id, merchant string, amount int64, date domain.CalendarDate) *domain.LedgerEntry {
	e := credit(id, merchant, amount, date)
	e.Kind = domain.EntryKindDebit
	return e
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}
