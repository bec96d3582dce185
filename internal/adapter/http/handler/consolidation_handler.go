package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/iho/cashflow/internal/adapter/http/dto"
	"github.com/iho/cashflow/internal/domain"
	"github.com/iho/cashflow/internal/usecase"
)

// ConsolidationService reads and purges daily consolidations.
type ConsolidationService interface {
	GetConsolidation(ctx context.Context, merchant string, date domain.CalendarDate) (*domain.DailyConsolidation, error)
	ListConsolidations(ctx context.Context, input usecase.ListConsolidationsInput) ([]*domain.DailyConsolidation, error)
	PurgeConsolidations(ctx context.Context, input usecase.ListConsolidationsInput) (int64, error)
	GetDailyStatus(ctx context.Context, date domain.CalendarDate) (*usecase.DailyStatus, error)
	IsProcessed(ctx context.Context, entryID string) (bool, error)
}

// ReconciliationService runs on-demand reconciliations.
type ReconciliationService interface {
	Reconcile(ctx context.Context, input usecase.ReconcileInput) (*usecase.ReconciliationResult, error)
}

// ConsolidationHandler handles consolidation-related HTTP requests.
type ConsolidationHandler struct {
	consolidations ConsolidationService
	reconciler     ReconciliationService
}

// NewConsolidationHandler creates a new ConsolidationHandler.
func NewConsolidationHandler(consolidations ConsolidationService, reconciler ReconciliationService) *ConsolidationHandler {
	return &ConsolidationHandler{
		consolidations: consolidations,
		reconciler:     reconciler,
	}
}

// Reconcile folds the window's unconsolidated entries.
func (h *ConsolidationHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	var req dto.ReconcileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.reconciler.Reconcile(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "reconciliation failed", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationFromResult(result))
}

// List lists consolidations in a period.
func (h *ConsolidationHandler) List(w http.ResponseWriter, r *http.Request) {
	start, end, merchant, err := parsePeriodQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid period", err.Error())
		return
	}

	consolidations, err := h.consolidations.ListConsolidations(r.Context(), usecase.ListConsolidationsInput{
		Merchant: merchant,
		Start:    start,
		End:      end,
	})
	if err != nil {
		writeDomainError(w, "failed to list consolidations", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ConsolidationsFromDomain(consolidations))
}

// Get returns one merchant's consolidation for one day.
func (h *ConsolidationHandler) Get(w http.ResponseWriter, r *http.Request) {
	date, err := domain.ParseCalendarDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	merchant, err := url.PathUnescape(chi.URLParam(r, "merchant"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid merchant", err.Error())
		return
	}

	consolidation, err := h.consolidations.GetConsolidation(r.Context(), merchant, date)
	if err != nil {
		writeDomainError(w, "failed to get consolidation", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ConsolidationFromDomain(consolidation))
}

// Purge deletes consolidations in a period.
func (h *ConsolidationHandler) Purge(w http.ResponseWriter, r *http.Request) {
	start, end, merchant, err := parsePeriodQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid period", err.Error())
		return
	}

	deleted, err := h.consolidations.PurgeConsolidations(r.Context(), usecase.ListConsolidationsInput{
		Merchant: merchant,
		Start:    start,
		End:      end,
	})
	if err != nil {
		writeDomainError(w, "failed to purge consolidations", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PurgeResponse{Deleted: deleted})
}

// Status summarises all merchants for one day.
func (h *ConsolidationHandler) Status(w http.ResponseWriter, r *http.Request) {
	date, err := domain.ParseCalendarDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	status, err := h.consolidations.GetDailyStatus(r.Context(), date)
	if err != nil {
		writeDomainError(w, "failed to get daily status", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.DailyStatusFromUseCase(status))
}

// EntryProcessed reports whether an entry already has a dedup marker.
func (h *ConsolidationHandler) EntryProcessed(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "entryID")

	processed, err := h.consolidations.IsProcessed(r.Context(), entryID)
	if err != nil {
		writeDomainError(w, "failed to check entry", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryProcessedResponse{EntryID: entryID, Processed: processed})
}
