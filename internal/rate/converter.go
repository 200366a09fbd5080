package rate

import (
	"context"
	"fmt"
	"fxconvert/internal/domain"

	"github.com/shopspring/decimal"
)

// resultPlaces is the precision of converted amounts. decimal.Round rounds half away from zero.
const resultPlaces = 2

type RateResolver interface {
	ResolveRate(ctx context.Context, base, target string) (decimal.Decimal, error)
}

type Converter struct {
	rates RateResolver
}

func (c *Converter) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (domain.ConversionResult, error) {
	if !amount.IsPositive() {
		return domain.ConversionResult{}, fmt.Errorf("%w: amount must be positive, got %s", domain.ErrInvalidInput, amount)
	}
	pair, err := domain.NewRatePair(from, to)
	if err != nil {
		return domain.ConversionResult{}, err
	}

	rate, err := c.rates.ResolveRate(ctx, pair.Base.String(), pair.Target.String())
	if err != nil {
		return domain.ConversionResult{}, fmt.Errorf("%w: %s: %w", domain.ErrRateUnavailable, pair.Key(), err)
	}

	result := amount.Mul(rate).Round(resultPlaces)
	return domain.ConversionResult{
		Amount:    amount,
		From:      pair.Base,
		To:        pair.Target,
		Rate:      rate,
		Result:    result,
		Formatted: fmt.Sprintf("%s %s = %s %s", amount, pair.Base, result, pair.Target),
	}, nil
}

func NewConverter(rates RateResolver) *Converter {
	return &Converter{rates: rates}
}
