package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"fxconvert/internal/domain"
	"fxconvert/internal/rate"
	"fxconvert/internal/rate/handler"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type stubRates struct{ flushed int }

func (s *stubRates) ResolveRate(_ context.Context, _, _ string) (decimal.Decimal, error) {
	return decimal.RequireFromString("0.91"), nil
}

func (s *stubRates) LatestStored(context.Context, string, string) (domain.RateRecord, error) {
	return domain.RateRecord{}, domain.ErrRateNotFound
}

func (s *stubRates) RateHistory(context.Context, string, string, int) ([]domain.RateRecord, error) {
	return nil, nil
}

func (s *stubRates) CacheStats(context.Context) (domain.CacheStats, error) {
	return domain.CacheStats{TotalRatesStored: 1}, nil
}

func (s *stubRates) FlushAll() { s.flushed++ }

func TestRouter_Routes(t *testing.T) {
	rates := &stubRates{}
	h := handler.NewHandler(rate.NewValidator(), rates, rate.NewConverter(rates), nil, nil)
	router := NewRouter(h)

	cases := []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/api/v1/rates/usd/eur", http.StatusOK},
		{http.MethodGet, "/api/v1/rates/cache-stats", http.StatusOK},
		{http.MethodPost, "/api/v1/rates/cache/flush", http.StatusNoContent},
		{http.MethodGet, "/api/v1/rates/USD/EUR/history?days=7", http.StatusOK},
		{http.MethodGet, "/api/v1/rates/US/EUR", http.StatusNotFound},
		{http.MethodDelete, "/api/v1/favorites/abc", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, nil))
			require.Equal(t, tc.want, rr.Code)
		})
	}
	require.Equal(t, 1, rates.flushed)
}
