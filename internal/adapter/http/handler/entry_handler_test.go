package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/cashflow/internal/adapter/http/dto"
	"github.com/iho/cashflow/internal/domain"
	"github.com/iho/cashflow/internal/usecase"
)

type entryServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreateEntryInput) (*domain.LedgerEntry, error)
	listFn   func(ctx context.Context, input usecase.ListEntriesInput) (*usecase.EntryPage, error)
}

func (s *entryServiceStub) CreateEntry(ctx context.Context, input usecase.CreateEntryInput) (*domain.LedgerEntry, error) {
	return s.createFn(ctx, input)
}

func (s *entryServiceStub) ListEntries(ctx context.Context, input usecase.ListEntriesInput) (*usecase.EntryPage, error) {
	return s.listFn(ctx, input)
}

func entryRouter(h *EntryHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/entries", h.Create)
	r.Get("/entries", h.List)
	return r
}

func TestEntryHandler_Create(t *testing.T) {
	var captured usecase.CreateEntryInput
	h := NewEntryHandler(&entryServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateEntryInput) (*domain.LedgerEntry, error) {
			captured = input
			if input.Amount.LessThanOrEqual(decimal.Zero) {
				return nil, domain.ErrInvalidAmount
			}
			return &domain.LedgerEntry{ID: "01HX", Merchant: input.Merchant, Amount: input.Amount, Kind: domain.EntryKindCredit, Date: input.Date}, nil
		},
	})
	router := entryRouter(h)

	rec := serve(router, http.MethodPost, "/entries", `{"merchant":"ACME","amount":"10.00","kind":"credit","date":"2024-01-01"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.Merchant != "ACME" || captured.Date != jan1 || captured.Kind != "credit" {
		t.Fatalf("unexpected input: %+v", captured)
	}

	var resp dto.EntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "01HX" || resp.Consolidated {
		t.Fatalf("unexpected response: %+v", resp)
	}

	rec = serve(router, http.MethodPost, "/entries", `{"merchant":"ACME","amount":"-1","kind":"credit","date":"2024-01-01"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	rec = serve(router, http.MethodPost, "/entries", `not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestEntryHandler_List(t *testing.T) {
	var captured usecase.ListEntriesInput
	h := NewEntryHandler(&entryServiceStub{
		listFn: func(ctx context.Context, input usecase.ListEntriesInput) (*usecase.EntryPage, error) {
			captured = input
			return &usecase.EntryPage{
				Entries: []*domain.LedgerEntry{
					{ID: "a", Merchant: "ACME", Kind: domain.EntryKindDebit, Amount: decimal.NewFromInt(5), Date: jan1},
				},
				NextAfterID: "a",
			}, nil
		},
	})
	router := entryRouter(h)

	rec := serve(router, http.MethodGet, "/entries?startDate=2024-01-01&endDate=2024-01-02&consolidated=false&afterId=0A&limit=1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.Consolidated == nil || *captured.Consolidated {
		t.Fatalf("expected consolidated=false filter, got %+v", captured.Consolidated)
	}
	if captured.AfterID != "0A" || captured.Limit != 1 {
		t.Fatalf("expected cursor 0A and limit 1, got %q %d", captured.AfterID, captured.Limit)
	}

	var resp dto.ListEntriesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 1 || resp.Entries[0].Kind != "debit" || resp.NextAfterID != "a" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	for _, query := range []string{"consolidated=perhaps", "limit=0", "limit=-3", "limit=ten"} {
		rec = serve(router, http.MethodGet, "/entries?startDate=2024-01-01&endDate=2024-01-02&"+query, "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", query, rec.Code)
		}
	}
}
