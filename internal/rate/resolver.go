package rate

import (
	"context"
	"fmt"
	"fxconvert/internal/adapters"
	"fxconvert/internal/domain"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const (
	ratePrecision          = 8
	defaultProviderTimeout = 10 * time.Second
	defaultStoreTimeout    = 5 * time.Second
	statsRecentWindow      = time.Hour

	DefaultHistoryDays = 30
	MaxHistoryDays     = 365
)

// Resolver finds the rate of a pair in memory, then in the store, then at the provider.
// A hit in a slower tier is written into the faster ones. There is no stale fallback
// and no retry: a failed provider call fails the resolution.
type Resolver struct {
	memory adapters.RateCache
	store  adapters.RateStore
	client adapters.RateClient

	freshnessWindow time.Duration
	providerTimeout time.Duration
	storeTimeout    time.Duration
	now             func() time.Time

	inflight singleflight.Group
}

type ResolverOption func(*Resolver)

func WithProviderTimeout(d time.Duration) ResolverOption {
	return func(r *Resolver) { r.providerTimeout = d }
}

func WithClock(now func() time.Time) ResolverOption {
	return func(r *Resolver) { r.now = now }
}

func (r *Resolver) ResolveRate(ctx context.Context, base, target string) (decimal.Decimal, error) {
	pair, err := domain.NewRatePair(base, target)
	if err != nil {
		return decimal.Zero, err
	}
	if pair.Base == pair.Target {
		return decimal.NewFromInt(1), nil
	}

	// STEP 1: memory
	if rate, ok := r.memory.GetRate(pair); ok {
		logrus.WithField("pair", pair.Key()).Debug("rate served from memory")
		return rate, nil
	}

	// STEP 2: store and provider, shared by every concurrent caller of the same pair.
	// The shared work is detached from the first caller's cancellation, each caller
	// still stops waiting when its own ctx is done.
	workCtx := context.WithoutCancel(ctx)
	resCh := r.inflight.DoChan(pair.Key(), func() (any, error) {
		return r.resolveMiss(workCtx, pair)
	})

	select {
	case <-ctx.Done():
		return decimal.Zero, fmt.Errorf("resolution of %s abandoned: %w", pair.Key(), ctx.Err())
	case res := <-resCh:
		if res.Err != nil {
			return decimal.Zero, res.Err
		}
		return res.Val.(decimal.Decimal), nil
	}
}

func (r *Resolver) resolveMiss(ctx context.Context, pair domain.RatePair) (decimal.Decimal, error) {
	if rate, ok := r.memory.GetRate(pair); ok {
		return rate, nil
	}

	rec, err := r.latestStored(ctx, pair)
	if err != nil {
		return decimal.Zero, err
	}
	if rec != nil && rec.IsFresh(r.now(), r.freshnessWindow) {
		r.memory.SetRate(pair, rec.Rate, r.freshnessWindow)
		logrus.WithFields(logrus.Fields{"pair": pair.Key(), "fetched_at": rec.FetchedAt}).Debug("rate served from store")
		return rec.Rate, nil
	}

	return r.fetchAndStore(ctx, pair)
}

func (r *Resolver) fetchAndStore(ctx context.Context, pair domain.RatePair) (decimal.Decimal, error) {
	providerCtx, cancel := context.WithTimeout(ctx, r.providerTimeout)
	defer cancel()

	rates, err := r.client.GetExchangeRates(providerCtx, pair.Base.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %w", domain.ErrProviderUnavailable, err)
	}
	raw, ok := rates[pair.Target.String()]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %w: no %s in snapshot for %s",
			domain.ErrProviderUnavailable, domain.ErrRateMissing, pair.Target, pair.Base)
	}
	rate := raw.Round(ratePrecision)
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: non-positive rate %s for %s", domain.ErrProviderUnavailable, raw, pair.Key())
	}

	rec := domain.RateRecord{Base: pair.Base, Target: pair.Target, Rate: rate, FetchedAt: r.now().UTC()}
	storeCtx, storeCancel := context.WithTimeout(ctx, r.storeTimeout)
	defer storeCancel()
	if err = r.store.Insert(storeCtx, rec); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	r.memory.SetRate(pair, rate, r.freshnessWindow)
	logrus.WithField("pair", pair.Key()).Debug("rate fetched from provider")
	return rate, nil
}

func (r *Resolver) latestStored(ctx context.Context, pair domain.RatePair) (*domain.RateRecord, error) {
	storeCtx, cancel := context.WithTimeout(ctx, r.storeTimeout)
	defer cancel()

	rec, err := r.store.LatestFor(storeCtx, pair)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return rec, nil
}

// FlushAll drops every cached rate at once. The currency catalog entry is kept.
func (r *Resolver) FlushAll() {
	r.memory.FlushRates()
}

// CacheStats aggregates the store only, the memory layer is not consulted.
func (r *Resolver) CacheStats(ctx context.Context) (domain.CacheStats, error) {
	var (
		stats domain.CacheStats
		err   error
	)
	if stats.TotalRatesStored, err = r.store.CountAll(ctx); err != nil {
		return domain.CacheStats{}, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	if stats.RatesFetchedLastHour, err = r.store.CountSince(ctx, r.now().Add(-statsRecentWindow)); err != nil {
		return domain.CacheStats{}, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	if stats.OldestFetch, err = r.store.Oldest(ctx); err != nil {
		return domain.CacheStats{}, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	if stats.NewestFetch, err = r.store.Newest(ctx); err != nil {
		return domain.CacheStats{}, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return stats, nil
}

// RateHistory lists stored rates of the pair over the last days, oldest first.
// days == 0 means DefaultHistoryDays.
func (r *Resolver) RateHistory(ctx context.Context, base, target string, days int) ([]domain.RateRecord, error) {
	if days == 0 {
		days = DefaultHistoryDays
	}
	if days < 0 || days > MaxHistoryDays {
		return nil, fmt.Errorf("%w: days must be between 1 and %d, got %d", domain.ErrInvalidInput, MaxHistoryDays, days)
	}
	pair, err := domain.NewRatePair(base, target)
	if err != nil {
		return nil, err
	}

	since := r.now().AddDate(0, 0, -days)
	history, err := r.store.HistoryFor(ctx, pair, since)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return history, nil
}

// LatestStored reads the newest stored record without any freshness check.
// It is the building block for callers that accept a stale rate.
func (r *Resolver) LatestStored(ctx context.Context, base, target string) (domain.RateRecord, error) {
	pair, err := domain.NewRatePair(base, target)
	if err != nil {
		return domain.RateRecord{}, err
	}
	rec, err := r.latestStored(ctx, pair)
	if err != nil {
		return domain.RateRecord{}, err
	}
	if rec == nil {
		return domain.RateRecord{}, fmt.Errorf("%w: %s", domain.ErrRateNotFound, pair.Key())
	}
	return *rec, nil
}

func NewResolver(memory adapters.RateCache, store adapters.RateStore, client adapters.RateClient, freshnessWindow time.Duration, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		memory:          memory,
		store:           store,
		client:          client,
		freshnessWindow: freshnessWindow,
		providerTimeout: defaultProviderTimeout,
		storeTimeout:    defaultStoreTimeout,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
