package handler

import (
	"encoding/json"
	"net"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type ConvertRequest struct {
	Amount string `json:"amount" example:"100"`
	From   string `json:"from" example:"USD"`
	To     string `json:"to" example:"EUR"`
}

type ConvertResponse struct {
	Amount    decimal.Decimal `json:"amount" swaggertype:"string" example:"100"`
	From      string          `json:"from" example:"USD"`
	To        string          `json:"to" example:"EUR"`
	Rate      decimal.Decimal `json:"rate" swaggertype:"string" example:"0.9137"`
	Result    decimal.Decimal `json:"result" swaggertype:"string" example:"91.37"`
	Formatted string          `json:"formatted" example:"100 USD = 91.37 EUR"`
}

// Convert godoc
// @Summary Convert an amount
// @Description Converts with the current rate and records the conversion in history.
// @Tags Conversions
// @Accept json
// @Produce json
// @Param request body ConvertRequest true "Conversion request"
// @Success 200 {object} ConvertResponse
// @Failure 400 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /convert [post]
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 512)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req ConvertRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, err := h.validator.ValidateAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	pair, err := h.validator.ValidatePair(req.From, req.To)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.converter.Convert(r.Context(), amount, pair.Base.String(), pair.Target.String())
	if err != nil {
		writeFailure(w, err, logrus.Fields{"handler": "Convert", "pair": pair.Key(), "amount": amount.String()})
		return
	}

	// history is best effort, a recorded conversion is not part of the answer
	if _, histErr := h.history.RecordConversion(r.Context(), res, clientIP(r)); histErr != nil {
		logrus.WithError(histErr).WithFields(logrus.Fields{"handler": "Convert", "pair": pair.Key()}).Warn("conversion not recorded")
	}

	writeJSON(w, http.StatusOK, ConvertResponse{
		Amount:    res.Amount,
		From:      res.From.String(),
		To:        res.To.String(),
		Rate:      res.Rate,
		Result:    res.Result,
		Formatted: res.Formatted,
	})
}

// clientIP relies on middleware.RealIP having rewritten RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
