package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/cashflow/internal/domain"
	"github.com/iho/cashflow/internal/usecase"
)

func TestReconcileRequest_ToUseCaseInput(t *testing.T) {
	var req ReconcileRequest
	body := `{"startDate":"2024-01-01","endDate":"2024-01-03T10:00:00-03:00","merchant":"ACME"}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got := req.ToUseCaseInput()
	want := usecase.ReconcileInput{
		Start:    domain.MustDate(2024, time.January, 1),
		End:      domain.MustDate(2024, time.January, 3),
		Merchant: "ACME",
	}

	if got != want {
		t.Fatalf("ToUseCaseInput() = %+v, want %+v", got, want)
	}
}

func TestReconcileRequest_RejectsBadDate(t *testing.T) {
	var req ReconcileRequest
	err := json.Unmarshal([]byte(`{"startDate":"2024-13-01","endDate":"2024-01-01"}`), &req)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateEntryRequest_ToUseCaseInput(t *testing.T) {
	tests := []struct {
		name string
		body string
		want usecase.CreateEntryInput
	}{
		{
			name: "numeric amount",
			body: `{"merchant":"ACME","amount":12.34,"kind":"credit","date":"2024-01-01"}`,
			want: usecase.CreateEntryInput{
				Merchant: "ACME",
				Amount:   decimal.RequireFromString("12.34"),
				Kind:     "credit",
				Date:     domain.MustDate(2024, time.January, 1),
			},
		},
		{
			name: "string amount with description",
			body: `{"merchant":"ACME","amount":"0.10","kind":"DEBIT","date":"2024-02-29","description":"fee"}`,
			want: usecase.CreateEntryInput{
				Merchant:    "ACME",
				Amount:      decimal.RequireFromString("0.10"),
				Kind:        "DEBIT",
				Date:        domain.MustDate(2024, time.February, 29),
				Description: "fee",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req CreateEntryRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}

			got := req.ToUseCaseInput()
			if !got.Amount.Equal(tt.want.Amount) {
				t.Fatalf("amount = %s, want %s", got.Amount, tt.want.Amount)
			}
			got.Amount = tt.want.Amount
			if got != tt.want {
				t.Fatalf("ToUseCaseInput() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
