package handler

import (
	"context"

	"fxconvert/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockRateService struct{ mock.Mock }

func (m *MockRateService) ResolveRate(ctx context.Context, base, target string) (decimal.Decimal, error) {
	args := m.Called(ctx, base, target)
	rate, _ := args.Get(0).(decimal.Decimal)
	return rate, args.Error(1)
}

func (m *MockRateService) LatestStored(ctx context.Context, base, target string) (domain.RateRecord, error) {
	args := m.Called(ctx, base, target)
	rec, _ := args.Get(0).(domain.RateRecord)
	return rec, args.Error(1)
}

func (m *MockRateService) RateHistory(ctx context.Context, base, target string, days int) ([]domain.RateRecord, error) {
	args := m.Called(ctx, base, target, days)
	history, _ := args.Get(0).([]domain.RateRecord)
	return history, args.Error(1)
}

func (m *MockRateService) CacheStats(ctx context.Context) (domain.CacheStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(domain.CacheStats)
	return stats, args.Error(1)
}

func (m *MockRateService) FlushAll() { m.Called() }

type MockConverter struct{ mock.Mock }

func (m *MockConverter) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (domain.ConversionResult, error) {
	args := m.Called(ctx, amount.String(), from, to)
	res, _ := args.Get(0).(domain.ConversionResult)
	return res, args.Error(1)
}

type MockCatalog struct{ mock.Mock }

func (m *MockCatalog) PopulateCurrencyCatalog(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockCatalog) ListActiveCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	currencies, _ := args.Get(0).([]domain.Currency)
	return currencies, args.Error(1)
}

type MockHistory struct{ mock.Mock }

func (m *MockHistory) RecordConversion(ctx context.Context, res domain.ConversionResult, clientIP string) (domain.Conversion, error) {
	args := m.Called(ctx, res, clientIP)
	c, _ := args.Get(0).(domain.Conversion)
	return c, args.Error(1)
}

func (m *MockHistory) RecentConversions(ctx context.Context, limit int) ([]domain.Conversion, error) {
	args := m.Called(ctx, limit)
	recent, _ := args.Get(0).([]domain.Conversion)
	return recent, args.Error(1)
}

func (m *MockHistory) AddFavorite(ctx context.Context, sessionID, from, to string) (domain.FavoritePair, error) {
	args := m.Called(ctx, sessionID, from, to)
	fav, _ := args.Get(0).(domain.FavoritePair)
	return fav, args.Error(1)
}

func (m *MockHistory) ListFavorites(ctx context.Context, sessionID string) ([]domain.FavoritePair, error) {
	args := m.Called(ctx, sessionID)
	favs, _ := args.Get(0).([]domain.FavoritePair)
	return favs, args.Error(1)
}

func (m *MockHistory) RemoveFavorite(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
