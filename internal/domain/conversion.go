package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ConversionResult struct {
	Amount    decimal.Decimal
	From      CurrencyCode
	To        CurrencyCode
	Rate      decimal.Decimal
	Result    decimal.Decimal
	Formatted string
}

// Conversion is a persisted history row.
type Conversion struct {
	ID        int64
	From      CurrencyCode
	To        CurrencyCode
	Amount    decimal.Decimal
	Rate      decimal.Decimal
	Result    decimal.Decimal
	ClientIP  string
	CreatedAt time.Time
}

type FavoritePair struct {
	ID         int64
	From       CurrencyCode
	To         CurrencyCode
	SessionID  string
	UsageCount int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
