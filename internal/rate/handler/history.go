package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type ConversionResponse struct {
	ID        int64           `json:"id" example:"1"`
	From      string          `json:"from" example:"USD"`
	To        string          `json:"to" example:"EUR"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"string" example:"100"`
	Rate      decimal.Decimal `json:"rate" swaggertype:"string" example:"0.9137"`
	Result    decimal.Decimal `json:"result" swaggertype:"string" example:"91.37"`
	CreatedAt time.Time       `json:"created_at"`
}

type ConversionHistoryResponse struct {
	Conversions []ConversionResponse `json:"conversions"`
}

// GetConversionHistory godoc
// @Summary Recent conversions
// @Tags Conversions
// @Produce json
// @Param limit query int false "Number of conversions, 1..100" default(10)
// @Success 200 {object} ConversionHistoryResponse
// @Failure 400 {object} errorResponse
// @Router /conversions/history [get]
func (h *Handler) GetConversionHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		var err error
		if limit, err = strconv.Atoi(raw); err != nil || limit <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
	}

	recent, err := h.history.RecentConversions(r.Context(), limit)
	if err != nil {
		writeFailure(w, err, logrus.Fields{"handler": "GetConversionHistory", "limit": limit})
		return
	}

	res := ConversionHistoryResponse{Conversions: make([]ConversionResponse, 0, len(recent))}
	for _, c := range recent {
		res.Conversions = append(res.Conversions, ConversionResponse{
			ID:        c.ID,
			From:      c.From.String(),
			To:        c.To.String(),
			Amount:    c.Amount,
			Rate:      c.Rate,
			Result:    c.Result,
			CreatedAt: c.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, res)
}
