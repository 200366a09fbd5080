package cache

import (
	"fmt"
	"fxconvert/internal/domain"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/shopspring/decimal"
)

const catalogKey = "catalog:active"

// Memory is the process-local cache layer. Rate entries live under a
// generation-scoped namespace, so FlushRates drops all of them in one step
// while catalog entries stay untouched. Every entry costs 1, so maxItems is
// an entry count.
type Memory struct {
	cache   *ristretto.Cache
	rateGen atomic.Uint64
}

func NewMemory(maxItems int64) (*Memory, error) {
	if maxItems <= 0 {
		return nil, fmt.Errorf("create memory cache failed: max items must be positive, got %d", maxItems)
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        10 * maxItems,
		MaxCost:            maxItems,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create memory cache failed: %w", err)
	}
	return &Memory{cache: c}, nil
}

func (m *Memory) GetRate(pair domain.RatePair) (decimal.Decimal, bool) {
	if v, ok := m.cache.Get(m.rateKey(pair)); ok {
		rate, ok := v.(decimal.Decimal)
		return rate, ok
	}
	return decimal.Zero, false
}

func (m *Memory) SetRate(pair domain.RatePair, rate decimal.Decimal, ttl time.Duration) {
	m.cache.SetWithTTL(m.rateKey(pair), rate, 1, ttl)
	m.cache.Wait()
}

// FlushRates makes every rate entry written so far unreachable.
// Stale generations are evicted by their TTL.
func (m *Memory) FlushRates() {
	m.rateGen.Add(1)
}

func (m *Memory) GetCurrencies() ([]domain.Currency, bool) {
	if v, ok := m.cache.Get(catalogKey); ok {
		currencies, ok := v.([]domain.Currency)
		return currencies, ok
	}
	return nil, false
}

func (m *Memory) SetCurrencies(currencies []domain.Currency, ttl time.Duration) {
	m.cache.SetWithTTL(catalogKey, currencies, 1, ttl)
	m.cache.Wait()
}

func (m *Memory) InvalidateCurrencies() {
	m.cache.Del(catalogKey)
	m.cache.Wait()
}

func (m *Memory) Close() { m.cache.Close() }

func (m *Memory) rateKey(p domain.RatePair) string {
	return "rate:" + strconv.FormatUint(m.rateGen.Load(), 10) + ":" + p.Key()
}
