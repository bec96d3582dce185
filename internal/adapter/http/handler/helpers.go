package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/iho/cashflow/internal/adapter/http/dto"
	"github.com/iho/cashflow/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeDomainError picks the status for err and writes it. Unclassified
// errors are not echoed to the client.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	status := mapDomainError(err)
	details := err.Error()
	if status == http.StatusInternalServerError {
		details = ""
	}
	writeError(w, status, message, details)
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case domain.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrConsolidationNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrReconciliationInProgress):
		return http.StatusConflict
	case errors.Is(err, domain.ErrLedgerUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// parseDateQuery parses a required calendar date query parameter.
func parseDateQuery(r *http.Request, key string) (domain.CalendarDate, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return domain.CalendarDate{}, fmt.Errorf("%w: missing %q", domain.ErrDateRequired, key)
	}
	return domain.ParseCalendarDate(val)
}

// parsePeriodQuery reads startDate, endDate and the optional merchant.
func parsePeriodQuery(r *http.Request) (start, end domain.CalendarDate, merchant string, err error) {
	if start, err = parseDateQuery(r, "startDate"); err != nil {
		return
	}
	if end, err = parseDateQuery(r, "endDate"); err != nil {
		return
	}
	merchant = r.URL.Query().Get("merchant")
	return
}

// parseBoolQuery parses an optional boolean query parameter.
func parseBoolQuery(r *http.Request, key string) (*bool, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return nil, fmt.Errorf("%w: %q must be true or false", domain.ErrValidation, key)
	}
	return &b, nil
}

// parseLimitQuery parses an optional positive page size. Zero means unset.
func parseLimitQuery(r *http.Request, key string) (int, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q must be a positive integer", domain.ErrValidation, key)
	}
	return n, nil
}
