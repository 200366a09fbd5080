package rate

import (
	"testing"

	"fxconvert/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestRequestValidator_ValidatePair_Errors(t *testing.T) {
	validator := NewValidator()

	_, err := validator.ValidatePair("", "EUR")
	require.ErrorIs(t, err, ErrBaseRequired)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = validator.ValidatePair("USD", "  ")
	require.ErrorIs(t, err, ErrTargetRequired)

	_, err = validator.ValidatePair("US", "EUR")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = validator.ValidatePair("USD", "E1R")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRequestValidator_ValidatePair_Normalizes(t *testing.T) {
	pair, err := NewValidator().ValidatePair("usd", " eur")
	require.NoError(t, err)
	require.Equal(t, domain.RatePair{Base: "USD", Target: "EUR"}, pair)

	// same currency is valid input, the resolver answers it with 1
	_, err = NewValidator().ValidatePair("USD", "usd")
	require.NoError(t, err)
}

func TestRequestValidator_ValidateAmount(t *testing.T) {
	validator := NewValidator()

	amount, err := validator.ValidateAmount(" 100.50 ")
	require.NoError(t, err)
	require.Equal(t, "100.5", amount.String())

	amount, err = validator.ValidateAmount("12.300")
	require.NoError(t, err)
	require.Equal(t, "12.3", amount.String())

	for _, raw := range []string{"", "abc", "0", "-5", "1.005", "1000000000000000"} {
		t.Run(raw, func(t *testing.T) {
			_, err := validator.ValidateAmount(raw)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
