package handler

import (
	"errors"
	"fxconvert/internal/domain"
	"fxconvert/internal/rate"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type RateResponse struct {
	Base      string          `json:"base" example:"USD"`
	Target    string          `json:"target" example:"EUR"`
	Rate      decimal.Decimal `json:"rate" swaggertype:"string" example:"0.9137"`
	Stale     bool            `json:"stale,omitempty"`
	FetchedAt *time.Time      `json:"fetched_at,omitempty"`
}

// GetRate godoc
// @Summary Get exchange rate
// @Description Resolve the rate of a pair from memory, storage or the provider.
// @Description With allow_stale=true a provider failure falls back to the newest stored rate.
// @Tags Rates
// @Produce json
// @Param base path string true "Base currency" example(USD)
// @Param target path string true "Target currency" example(EUR)
// @Param allow_stale query bool false "Serve the last stored rate when the provider fails"
// @Success 200 {object} RateResponse
// @Failure 400 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Failure 503 {object} errorResponse
// @Router /rates/{base}/{target} [get]
func (h *Handler) GetRate(w http.ResponseWriter, r *http.Request) {
	pair, err := h.validator.ValidatePair(chi.URLParam(r, "base"), chi.URLParam(r, "target"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	fields := logrus.Fields{"handler": "GetRate", "pair": pair.Key()}

	value, err := h.rates.ResolveRate(r.Context(), pair.Base.String(), pair.Target.String())
	if err == nil {
		writeJSON(w, http.StatusOK, RateResponse{Base: pair.Base.String(), Target: pair.Target.String(), Rate: value})
		return
	}
	if !errors.Is(err, domain.ErrProviderUnavailable) || !allowStale(r) {
		writeFailure(w, err, fields)
		return
	}

	rec, staleErr := h.rates.LatestStored(r.Context(), pair.Base.String(), pair.Target.String())
	if staleErr != nil {
		// the provider failure is what the caller needs to see
		writeFailure(w, err, fields)
		return
	}
	logrus.WithError(err).WithFields(fields).Warn("serving stale rate")
	writeJSON(w, http.StatusOK, RateResponse{
		Base:      pair.Base.String(),
		Target:    pair.Target.String(),
		Rate:      rec.Rate,
		Stale:     true,
		FetchedAt: &rec.FetchedAt,
	})
}

func allowStale(r *http.Request) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get("allow_stale"))
	return err == nil && v
}

type RateHistoryPoint struct {
	Rate      decimal.Decimal `json:"rate" swaggertype:"string" example:"0.9137"`
	FetchedAt time.Time       `json:"fetched_at"`
}

type RateHistoryResponse struct {
	Base   string             `json:"base" example:"USD"`
	Target string             `json:"target" example:"EUR"`
	Days   int                `json:"days" example:"30"`
	Points []RateHistoryPoint `json:"points"`
}

// GetRateHistory godoc
// @Summary Stored rate history
// @Tags Rates
// @Produce json
// @Param base path string true "Base currency"
// @Param target path string true "Target currency"
// @Param days query int false "Days back, 1..365" default(30)
// @Success 200 {object} RateHistoryResponse
// @Failure 400 {object} errorResponse
// @Failure 503 {object} errorResponse
// @Router /rates/{base}/{target}/history [get]
func (h *Handler) GetRateHistory(w http.ResponseWriter, r *http.Request) {
	pair, err := h.validator.ValidatePair(chi.URLParam(r, "base"), chi.URLParam(r, "target"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		if days, err = strconv.Atoi(raw); err != nil || days <= 0 {
			writeError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
	}

	history, err := h.rates.RateHistory(r.Context(), pair.Base.String(), pair.Target.String(), days)
	if err != nil {
		writeFailure(w, err, logrus.Fields{"handler": "GetRateHistory", "pair": pair.Key(), "days": days})
		return
	}
	if days == 0 {
		days = rate.DefaultHistoryDays
	}

	points := make([]RateHistoryPoint, 0, len(history))
	for _, rec := range history {
		points = append(points, RateHistoryPoint{Rate: rec.Rate, FetchedAt: rec.FetchedAt})
	}
	writeJSON(w, http.StatusOK, RateHistoryResponse{
		Base:   pair.Base.String(),
		Target: pair.Target.String(),
		Days:   days,
		Points: points,
	})
}
