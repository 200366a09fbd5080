package handler

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type CacheStatsResponse struct {
	TotalRatesStored     int64      `json:"total_rates_stored" example:"1200"`
	RatesFetchedLastHour int64      `json:"rates_fetched_last_hour" example:"14"`
	OldestFetch          *time.Time `json:"oldest_fetch"`
	NewestFetch          *time.Time `json:"newest_fetch"`
}

// GetCacheStats godoc
// @Summary Stored rate statistics
// @Tags Cache
// @Produce json
// @Success 200 {object} CacheStatsResponse
// @Failure 503 {object} errorResponse
// @Router /rates/cache-stats [get]
func (h *Handler) GetCacheStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.rates.CacheStats(r.Context())
	if err != nil {
		writeFailure(w, err, logrus.Fields{"handler": "GetCacheStats"})
		return
	}
	writeJSON(w, http.StatusOK, CacheStatsResponse{
		TotalRatesStored:     stats.TotalRatesStored,
		RatesFetchedLastHour: stats.RatesFetchedLastHour,
		OldestFetch:          stats.OldestFetch,
		NewestFetch:          stats.NewestFetch,
	})
}

// FlushCache godoc
// @Summary Flush cached rates
// @Description Drops every in-memory rate. Stored rates and the currency list are kept.
// @Tags Cache
// @Success 204
// @Router /rates/cache/flush [post]
func (h *Handler) FlushCache(w http.ResponseWriter, _ *http.Request) {
	h.rates.FlushAll()
	logrus.Info("Rate cache flushed")
	w.WriteHeader(http.StatusNoContent)
}
