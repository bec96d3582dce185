package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/cashflow/internal/domain"
	"github.com/iho/cashflow/internal/usecase"
)

// ConsolidationResponse represents a daily consolidation in API responses.
type ConsolidationResponse struct {
	LastUpdatedAt time.Time           `json:"lastUpdatedAt"`
	Date          domain.CalendarDate `json:"date"`
	Merchant      string              `json:"merchant"`
	TotalCredits  decimal.Decimal     `json:"totalCredits"`
	TotalDebits   decimal.Decimal     `json:"totalDebits"`
	NetBalance    decimal.Decimal     `json:"netBalance"`
	ID            int64               `json:"id"`
	CreditCount   int64               `json:"creditCount"`
	DebitCount    int64               `json:"debitCount"`
}

// ConsolidationFromDomain converts a domain consolidation to response.
func ConsolidationFromDomain(c *domain.DailyConsolidation) *ConsolidationResponse {
	return &ConsolidationResponse{
		ID:            c.ID,
		Merchant:      c.Merchant,
		Date:          c.Date,
		TotalCredits:  c.TotalCredits,
		TotalDebits:   c.TotalDebits,
		NetBalance:    c.NetBalance(),
		CreditCount:   c.CreditCount,
		DebitCount:    c.DebitCount,
		LastUpdatedAt: c.LastUpdatedAt,
	}
}

// ConsolidationsFromDomain converts domain consolidations to responses.
func ConsolidationsFromDomain(consolidations []*domain.DailyConsolidation) []*ConsolidationResponse {
	result := make([]*ConsolidationResponse, len(consolidations))
	for i, c := range consolidations {
		result[i] = ConsolidationFromDomain(c)
	}
	return result
}

// ReconciliationResponse represents the outcome of a reconciliation run.
type ReconciliationResponse struct {
	StartDate      domain.CalendarDate      `json:"startDate"`
	EndDate        domain.CalendarDate      `json:"endDate"`
	Merchant       string                   `json:"merchant,omitempty"`
	Consolidations []*ConsolidationResponse `json:"consolidations"`
	EntriesFound   int                      `json:"entriesFound"`
	EntriesApplied int                      `json:"entriesApplied"`
	EntriesSkipped int                      `json:"entriesSkipped"`
	Published      bool                     `json:"published"`
}

// ReconciliationFromResult converts a use case result to response.
func ReconciliationFromResult(r *usecase.ReconciliationResult) *ReconciliationResponse {
	return &ReconciliationResponse{
		StartDate:      r.Start,
		EndDate:        r.End,
		Merchant:       r.Merchant,
		Consolidations: ConsolidationsFromDomain(r.Consolidations),
		EntriesFound:   r.EntriesFound,
		EntriesApplied: r.EntriesApplied,
		EntriesSkipped: r.EntriesSkipped,
		Published:      r.Published,
	}
}

// DailyStatusResponse summarises one day across merchants.
type DailyStatusResponse struct {
	LastUpdatedAt *time.Time          `json:"lastUpdatedAt,omitempty"`
	Date          domain.CalendarDate `json:"date"`
	TotalCredits  decimal.Decimal     `json:"totalCredits"`
	TotalDebits   decimal.Decimal     `json:"totalDebits"`
	NetBalance    decimal.Decimal     `json:"netBalance"`
	Merchants     int                 `json:"merchants"`
	CreditCount   int64               `json:"creditCount"`
	DebitCount    int64               `json:"debitCount"`
}

func DailyStatusFromUseCase(s *usecase.DailyStatus) *DailyStatusResponse {
	return &DailyStatusResponse{
		LastUpdatedAt: s.LastUpdatedAt,
		Date:          s.Date,
		TotalCredits:  s.TotalCredits,
		TotalDebits:   s.TotalDebits,
		NetBalance:    s.NetBalance(),
		Merchants:     s.Merchants,
		CreditCount:   s.CreditCount,
		DebitCount:    s.DebitCount,
	}
}

// PurgeResponse reports how many consolidations were deleted.
type PurgeResponse struct {
	Deleted int64 `json:"deleted"`
}

// EntryProcessedResponse reports whether an entry was already folded in.
type EntryProcessedResponse struct {
	EntryID   string `json:"entryId"`
	Processed bool   `json:"processed"`
}

// EntryResponse represents a ledger entry in API responses. The ledger
// client decodes the same shape.
type EntryResponse struct {
	RecordedAt   time.Time           `json:"recordedAt"`
	Date         domain.CalendarDate `json:"date"`
	ID           string              `json:"id"`
	Merchant     string              `json:"merchant"`
	Kind         string              `json:"kind"`
	Description  string              `json:"description,omitempty"`
	Amount       decimal.Decimal     `json:"amount"`
	Consolidated bool                `json:"consolidated"`
}

// EntryFromDomain converts a domain entry to response.
func EntryFromDomain(e *domain.LedgerEntry) *EntryResponse {
	return &EntryResponse{
		RecordedAt:   e.RecordedAt,
		Date:         e.Date,
		ID:           e.ID,
		Merchant:     e.Merchant,
		Kind:         string(e.Kind),
		Description:  e.Description,
		Amount:       e.Amount,
		Consolidated: e.Consolidated,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.LedgerEntry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// ToDomain converts the response back into an entry. The kind is parsed but
// the entry is not validated.
func (r *EntryResponse) ToDomain() (*domain.LedgerEntry, error) {
	kind, err := domain.ParseEntryKind(r.Kind)
	if err != nil {
		return nil, err
	}
	return &domain.LedgerEntry{
		RecordedAt:   r.RecordedAt,
		Date:         r.Date,
		ID:           r.ID,
		Merchant:     domain.NormalizeMerchant(r.Merchant),
		Kind:         kind,
		Description:  r.Description,
		Amount:       r.Amount,
		Consolidated: r.Consolidated,
	}, nil
}

// ListEntriesResponse wraps one page of the period query. NextAfterID is the
// cursor for the following page and is omitted on the last one.
type ListEntriesResponse struct {
	Entries     []*EntryResponse `json:"entries"`
	Count       int              `json:"count"`
	NextAfterID string           `json:"nextAfterId,omitempty"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
