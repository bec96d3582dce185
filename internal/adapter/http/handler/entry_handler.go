package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/iho/cashflow/internal/adapter/http/dto"
	"github.com/iho/cashflow/internal/domain"
	"github.com/iho/cashflow/internal/usecase"
)

// EntryService records and queries ledger entries.
type EntryService interface {
	CreateEntry(ctx context.Context, input usecase.CreateEntryInput) (*domain.LedgerEntry, error)
	ListEntries(ctx context.Context, input usecase.ListEntriesInput) (*usecase.EntryPage, error)
}

// EntryHandler handles ledger entry HTTP requests.
type EntryHandler struct {
	entries EntryService
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entries EntryService) *EntryHandler {
	return &EntryHandler{entries: entries}
}

// Create records a new entry.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.entries.CreateEntry(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to create entry", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// List answers the period query one page at a time. The response carries
// nextAfterId while more entries remain.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	start, end, merchant, err := parsePeriodQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid period", err.Error())
		return
	}

	consolidated, err := parseBoolQuery(r, "consolidated")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid consolidated flag", err.Error())
		return
	}

	limit, err := parseLimitQuery(r, "limit")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid limit", err.Error())
		return
	}

	page, err := h.entries.ListEntries(r.Context(), usecase.ListEntriesInput{
		Consolidated: consolidated,
		Merchant:     merchant,
		AfterID:      r.URL.Query().Get("afterId"),
		Start:        start,
		End:          end,
		Limit:        limit,
	})
	if err != nil {
		writeDomainError(w, "failed to list entries", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListEntriesResponse{
		Entries:     dto.EntriesFromDomain(page.Entries),
		Count:       len(page.Entries),
		NextAfterID: page.NextAfterID,
	})
}
