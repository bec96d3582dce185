package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is the parent of every input error. Messages failing validation
// are never retried.
var ErrValidation = errors.New("validation failed")

var (
	// Entry errors
	ErrInvalidAmount    = fmt.Errorf("%w: amount must be positive", ErrValidation)
	ErrMerchantRequired = fmt.Errorf("%w: merchant is required", ErrValidation)
	ErrDateRequired     = fmt.Errorf("%w: date is required", ErrValidation)
	ErrInvalidEntryKind = fmt.Errorf("%w: entry kind must be credit or debit", ErrValidation)
	ErrEntryIDRequired  = fmt.Errorf("%w: entry id is required", ErrValidation)
	ErrInvalidDate      = fmt.Errorf("%w: invalid calendar date", ErrValidation)
	ErrInvalidPeriod    = fmt.Errorf("%w: end date is before start date", ErrValidation)
	ErrMerchantTooLong  = fmt.Errorf("%w: merchant exceeds %d characters", ErrValidation, MaxMerchantLength)
	ErrEntryIDTooLong   = fmt.Errorf("%w: entry id exceeds %d characters", ErrValidation, MaxEntryIDLength)

	// Consolidation errors
	ErrConsolidationNotFound    = errors.New("consolidation not found")
	ErrReconciliationInProgress = errors.New("reconciliation already running for this window")

	// Collaborator errors
	ErrPublishFailed     = errors.New("publish failed")
	ErrLedgerUnavailable = errors.New("ledger service unavailable")
)

// IsValidation reports whether err is an input error that must not be retried.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
