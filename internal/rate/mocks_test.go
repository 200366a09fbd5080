package rate

import (
	"context"
	"sync"
	"time"

	"fxconvert/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockRateClient struct{ mock.Mock }

func (m *MockRateClient) GetExchangeRates(ctx context.Context, base string) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, base)
	rates, _ := args.Get(0).(map[string]decimal.Decimal)
	return rates, args.Error(1)
}

func (m *MockRateClient) GetSupportedCodes(ctx context.Context) ([]domain.SupportedCode, error) {
	args := m.Called(ctx)
	codes, _ := args.Get(0).([]domain.SupportedCode)
	return codes, args.Error(1)
}

type MockRateStore struct{ mock.Mock }

func (m *MockRateStore) Insert(ctx context.Context, rec domain.RateRecord) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *MockRateStore) LatestFor(ctx context.Context, pair domain.RatePair) (*domain.RateRecord, error) {
	args := m.Called(ctx, pair)
	rec, _ := args.Get(0).(*domain.RateRecord)
	return rec, args.Error(1)
}

func (m *MockRateStore) HistoryFor(ctx context.Context, pair domain.RatePair, since time.Time) ([]domain.RateRecord, error) {
	args := m.Called(ctx, pair, since)
	history, _ := args.Get(0).([]domain.RateRecord)
	return history, args.Error(1)
}

func (m *MockRateStore) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRateStore) CountSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRateStore) Oldest(ctx context.Context) (*time.Time, error) {
	args := m.Called(ctx)
	ts, _ := args.Get(0).(*time.Time)
	return ts, args.Error(1)
}

func (m *MockRateStore) Newest(ctx context.Context) (*time.Time, error) {
	args := m.Called(ctx)
	ts, _ := args.Get(0).(*time.Time)
	return ts, args.Error(1)
}

type MockCurrencyRepository struct{ mock.Mock }

func (m *MockCurrencyRepository) UpsertActive(ctx context.Context, currencies []domain.Currency) (int, error) {
	args := m.Called(ctx, currencies)
	return args.Int(0), args.Error(1)
}

func (m *MockCurrencyRepository) ListActive(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	currencies, _ := args.Get(0).([]domain.Currency)
	return currencies, args.Error(1)
}

// memoryCache is a map-backed RateCache/CatalogCache that counts reads.
type memoryCache struct {
	mu         sync.Mutex
	rates      map[domain.RatePair]decimal.Decimal
	currencies []domain.Currency
	rateReads  int
	rateWrites int
	ttls       []time.Duration
}

func newMemoryCache() *memoryCache {
	return &memoryCache{rates: make(map[domain.RatePair]decimal.Decimal)}
}

func (c *memoryCache) GetRate(pair domain.RatePair) (decimal.Decimal, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rateReads++
	rate, ok := c.rates[pair]
	return rate, ok
}

func (c *memoryCache) SetRate(pair domain.RatePair, rate decimal.Decimal, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rateWrites++
	c.rates[pair] = rate
	c.ttls = append(c.ttls, ttl)
}

func (c *memoryCache) FlushRates() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rates = make(map[domain.RatePair]decimal.Decimal)
}

func (c *memoryCache) GetCurrencies() ([]domain.Currency, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currencies, c.currencies != nil
}

func (c *memoryCache) SetCurrencies(currencies []domain.Currency, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currencies = currencies
}

func (c *memoryCache) InvalidateCurrencies() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currencies = nil
}

func (c *memoryCache) writes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rateWrites
}
