package rate

import (
	"errors"
	"fmt"
	"fxconvert/internal/domain"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrBaseRequired   = errors.New("base currency is required")
	ErrTargetRequired = errors.New("target currency is required")
	ErrAmountRequired = errors.New("amount is required")
)

const maxAmountPlaces = 2

// conversions.amount is numeric(20,2).
var maxAmount = decimal.New(1, 15)

// RequestValidator checks raw request input before it reaches the core.
type RequestValidator struct{}

func (v *RequestValidator) ValidatePair(base, target string) (domain.RatePair, error) {
	if strings.TrimSpace(base) == "" {
		return domain.RatePair{}, fmt.Errorf("%w: %w", domain.ErrInvalidInput, ErrBaseRequired)
	}
	if strings.TrimSpace(target) == "" {
		return domain.RatePair{}, fmt.Errorf("%w: %w", domain.ErrInvalidInput, ErrTargetRequired)
	}
	return domain.NewRatePair(base, target)
}

// ValidateAmount parses a positive amount with at most two fractional digits.
func (v *RequestValidator) ValidateAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, fmt.Errorf("%w: %w", domain.ErrInvalidInput, ErrAmountRequired)
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount %q is not a number", domain.ErrInvalidInput, raw)
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: amount must be positive, got %s", domain.ErrInvalidInput, raw)
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return decimal.Zero, fmt.Errorf("%w: amount %q is too large", domain.ErrInvalidInput, raw)
	}
	if !amount.Equal(amount.Truncate(maxAmountPlaces)) {
		return decimal.Zero, fmt.Errorf("%w: amount %q has more than %d decimal places", domain.ErrInvalidInput, raw, maxAmountPlaces)
	}
	return amount, nil
}

func NewValidator() *RequestValidator {
	return &RequestValidator{}
}
