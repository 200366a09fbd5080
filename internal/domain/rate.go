package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RatePair struct {
	Base   CurrencyCode
	Target CurrencyCode
}

func NewRatePair(base, target string) (RatePair, error) {
	b, err := ParseCurrencyCode(base)
	if err != nil {
		return RatePair{}, err
	}
	t, err := ParseCurrencyCode(target)
	if err != nil {
		return RatePair{}, err
	}
	return RatePair{Base: b, Target: t}, nil
}

func (p RatePair) Key() string { return string(p.Base) + ":" + string(p.Target) }

func (p RatePair) Reversed() RatePair {
	return RatePair{
		Base:   p.Target,
		Target: p.Base,
	}
}

// RateRecord is one fetched rate. Records are append-only, the current rate
// of a pair is the record with the latest FetchedAt.
type RateRecord struct {
	Base      CurrencyCode
	Target    CurrencyCode
	Rate      decimal.Decimal
	FetchedAt time.Time
}

func (r RateRecord) Pair() RatePair { return RatePair{Base: r.Base, Target: r.Target} }

func (r RateRecord) Age(now time.Time) time.Duration { return now.Sub(r.FetchedAt) }

func (r RateRecord) IsFresh(now time.Time, window time.Duration) bool {
	return r.Age(now) < window
}

type CacheStats struct {
	TotalRatesStored     int64
	RatesFetchedLastHour int64
	OldestFetch          *time.Time
	NewestFetch          *time.Time
}
