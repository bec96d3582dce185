package generated

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type DailyConsolidation struct {
	ID            int64              `json:"id"`
	Merchant      string             `json:"merchant"`
	Date          pgtype.Date        `json:"date"`
	TotalCredits  pgtype.Numeric     `json:"total_credits"`
	TotalDebits   pgtype.Numeric     `json:"total_debits"`
	CreditCount   int64              `json:"credit_count"`
	DebitCount    int64              `json:"debit_count"`
	LastUpdatedAt pgtype.Timestamptz `json:"last_updated_at"`
}

type ProcessedEntry struct {
	EntryID     string             `json:"entry_id"`
	ProcessedAt pgtype.Timestamptz `json:"processed_at"`
}
