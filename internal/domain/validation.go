package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxMerchantLength    = 100
	MaxEntryIDLength     = 64 // processed_entries.entry_id
	MaxDescriptionLength = 500
	MaxEntryAmount       = "1000000000000" // 1 trillion
)

// NormalizeMerchant trims surrounding whitespace so "A " and "A" share one
// aggregate.
func NormalizeMerchant(merchant string) string {
	return strings.TrimSpace(merchant)
}

// ValidateMerchant rejects blank or oversized merchant names.
func ValidateMerchant(merchant string) error {
	merchant = strings.TrimSpace(merchant)

	if merchant == "" {
		return ErrMerchantRequired
	}

	if len(merchant) > MaxMerchantLength {
		return ErrMerchantTooLong
	}

	return nil
}

// ValidateAmount rejects zero, negative and absurdly large amounts.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxEntryAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrInvalidAmount, MaxEntryAmount)
	}

	return nil
}

// ValidateDescription limits free text stored with an entry.
func ValidateDescription(description string) error {
	if len(description) > MaxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrValidation, MaxDescriptionLength)
	}
	return nil
}
