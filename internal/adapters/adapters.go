package adapters

import (
	"context"
	"fxconvert/internal/domain"
	"time"

	"github.com/shopspring/decimal"
)

type RateClient interface {
	GetExchangeRates(ctx context.Context, base string) (map[string]decimal.Decimal, error)
	GetSupportedCodes(ctx context.Context) ([]domain.SupportedCode, error)
}

// RateStore is the durable, append-only table of fetched rates.
type RateStore interface {
	Insert(ctx context.Context, rec domain.RateRecord) error
	LatestFor(ctx context.Context, pair domain.RatePair) (*domain.RateRecord, error)
	HistoryFor(ctx context.Context, pair domain.RatePair, since time.Time) ([]domain.RateRecord, error)
	CountAll(ctx context.Context) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
	Oldest(ctx context.Context) (*time.Time, error)
	Newest(ctx context.Context) (*time.Time, error)
}

type CurrencyRepository interface {
	UpsertActive(ctx context.Context, currencies []domain.Currency) (int, error)
	ListActive(ctx context.Context) ([]domain.Currency, error)
}

type ConversionRepository interface {
	Save(ctx context.Context, c domain.Conversion) (domain.Conversion, error)
	Recent(ctx context.Context, limit int) ([]domain.Conversion, error)
}

type FavoriteRepository interface {
	AddOrIncrement(ctx context.Context, sessionID string, pair domain.RatePair) (domain.FavoritePair, error)
	ListBySession(ctx context.Context, sessionID string) ([]domain.FavoritePair, error)
	Delete(ctx context.Context, id int64) error
}

// RateCache is the in-memory layer in front of the RateStore.
type RateCache interface {
	GetRate(pair domain.RatePair) (decimal.Decimal, bool)
	SetRate(pair domain.RatePair, rate decimal.Decimal, ttl time.Duration)
	FlushRates()
}

type CatalogCache interface {
	GetCurrencies() ([]domain.Currency, bool)
	SetCurrencies(currencies []domain.Currency, ttl time.Duration)
	InvalidateCurrencies()
}
