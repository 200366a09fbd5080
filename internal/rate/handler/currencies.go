package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

type CurrencyResponse struct {
	Code   string `json:"code" example:"EUR"`
	Name   string `json:"name" example:"Euro"`
	Symbol string `json:"symbol" example:"€"`
}

type ListCurrenciesResponse struct {
	Currencies []CurrencyResponse `json:"currencies"`
}

type SyncCurrenciesResponse struct {
	Synced int `json:"synced" example:"161"`
}

// ListCurrencies godoc
// @Summary List active currencies
// @Tags Currencies
// @Produce json
// @Success 200 {object} ListCurrenciesResponse
// @Failure 503 {object} errorResponse
// @Router /currencies [get]
func (h *Handler) ListCurrencies(w http.ResponseWriter, r *http.Request) {
	currencies, err := h.catalog.ListActiveCurrencies(r.Context())
	if err != nil {
		writeFailure(w, err, logrus.Fields{"handler": "ListCurrencies"})
		return
	}

	res := ListCurrenciesResponse{Currencies: make([]CurrencyResponse, 0, len(currencies))}
	for _, c := range currencies {
		res.Currencies = append(res.Currencies, CurrencyResponse{Code: c.Code.String(), Name: c.Name, Symbol: c.Symbol})
	}
	writeJSON(w, http.StatusOK, res)
}

// SyncCurrencies godoc
// @Summary Sync currencies from the provider
// @Tags Currencies
// @Produce json
// @Success 200 {object} SyncCurrenciesResponse
// @Failure 502 {object} errorResponse
// @Failure 503 {object} errorResponse
// @Router /currencies/sync [post]
func (h *Handler) SyncCurrencies(w http.ResponseWriter, r *http.Request) {
	n, err := h.catalog.PopulateCurrencyCatalog(r.Context())
	if err != nil {
		writeFailure(w, err, logrus.Fields{"handler": "SyncCurrencies"})
		return
	}
	writeJSON(w, http.StatusOK, SyncCurrenciesResponse{Synced: n})
}
