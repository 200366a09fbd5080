package domain

import (
	"fmt"
	"strings"
	"time"
)

// CurrencyCode is an ISO-4217 style code, always uppercase.
type CurrencyCode string

func (c CurrencyCode) String() string { return string(c) }

// ParseCurrencyCode trims and uppercases raw and checks it is exactly three letters.
func ParseCurrencyCode(raw string) (CurrencyCode, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if len(code) != 3 {
		return "", fmt.Errorf("%w: currency code %q must have 3 letters", ErrInvalidInput, raw)
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return "", fmt.Errorf("%w: currency code %q must contain letters only", ErrInvalidInput, raw)
		}
	}
	return CurrencyCode(code), nil
}

type Currency struct {
	Code      CurrencyCode
	Name      string
	Symbol    string
	IsActive  bool
	UpdatedAt time.Time
}

// SupportedCode is one entry of the provider's code list.
type SupportedCode struct {
	Code string
	Name string
}
