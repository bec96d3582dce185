package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/cashflow/internal/domain"
	"github.com/iho/cashflow/internal/usecase"
)

// ReconcileRequest represents a request to reconcile a window of days.
type ReconcileRequest struct {
	StartDate domain.CalendarDate `json:"startDate"`
	EndDate   domain.CalendarDate `json:"endDate"`
	Merchant  string              `json:"merchant,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *ReconcileRequest) ToUseCaseInput() usecase.ReconcileInput {
	return usecase.ReconcileInput{
		Start:    r.StartDate,
		End:      r.EndDate,
		Merchant: r.Merchant,
	}
}

// CreateEntryRequest represents a request to record a ledger entry.
type CreateEntryRequest struct {
	Date        domain.CalendarDate `json:"date"`
	Merchant    string              `json:"merchant"`
	Kind        string              `json:"kind"`
	Description string              `json:"description,omitempty"`
	Amount      decimal.Decimal     `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateEntryRequest) ToUseCaseInput() usecase.CreateEntryInput {
	return usecase.CreateEntryInput{
		Date:        r.Date,
		Merchant:    r.Merchant,
		Kind:        r.Kind,
		Description: r.Description,
		Amount:      r.Amount,
	}
}
