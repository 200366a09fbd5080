package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fxconvert/internal/domain"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type Validator interface {
	ValidatePair(base, target string) (domain.RatePair, error)
	ValidateAmount(raw string) (decimal.Decimal, error)
}

type RateService interface {
	ResolveRate(ctx context.Context, base, target string) (decimal.Decimal, error)
	LatestStored(ctx context.Context, base, target string) (domain.RateRecord, error)
	RateHistory(ctx context.Context, base, target string, days int) ([]domain.RateRecord, error)
	CacheStats(ctx context.Context) (domain.CacheStats, error)
	FlushAll()
}

type ConversionService interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) (domain.ConversionResult, error)
}

type CatalogService interface {
	PopulateCurrencyCatalog(ctx context.Context) (int, error)
	ListActiveCurrencies(ctx context.Context) ([]domain.Currency, error)
}

type HistoryService interface {
	RecordConversion(ctx context.Context, res domain.ConversionResult, clientIP string) (domain.Conversion, error)
	RecentConversions(ctx context.Context, limit int) ([]domain.Conversion, error)
	AddFavorite(ctx context.Context, sessionID, from, to string) (domain.FavoritePair, error)
	ListFavorites(ctx context.Context, sessionID string) ([]domain.FavoritePair, error)
	RemoveFavorite(ctx context.Context, id int64) error
}

type Handler struct {
	validator Validator
	rates     RateService
	converter ConversionService
	catalog   CatalogService
	history   HistoryService
}

func NewHandler(validator Validator, rates RateService, converter ConversionService, catalog CatalogService, history HistoryService) *Handler {
	return &Handler{
		validator: validator,
		rates:     rates,
		converter: converter,
		catalog:   catalog,
		history:   history,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	writeJSON(w, statusCode, errorResponse{Error: errorMsg})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// writeFailure maps an error kind to a status. A storage kind wins over the
// rate kind the converter wraps around it. Server side failures are logged
// here and answered with a fixed message.
func writeFailure(w http.ResponseWriter, err error, fields logrus.Fields) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrRateNotFound), errors.Is(err, domain.ErrFavoriteNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrStoreUnavailable):
		logrus.WithError(err).WithFields(fields).Error("storage failure")
		writeError(w, http.StatusServiceUnavailable, "storage is unavailable right now")
	case errors.Is(err, domain.ErrRateUnavailable), errors.Is(err, domain.ErrProviderUnavailable):
		logrus.WithError(err).WithFields(fields).Warn("rate provider failure")
		writeError(w, http.StatusBadGateway, "exchange rate is unavailable right now")
	default:
		logrus.WithError(err).WithFields(fields).Error("request failed")
		writeError(w, http.StatusInternalServerError, "ups, something went wrong this time")
	}
}
