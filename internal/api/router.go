package api

import (
	_ "fxconvert/docs"
	"fxconvert/internal/rate/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	swagger "github.com/swaggo/http-swagger"
)

func NewRouter(h *handler.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/rates/cache-stats", h.GetCacheStats)
		r.Post("/rates/cache/flush", h.FlushCache)
		r.Get("/rates/{base:[A-Za-z]{3}}/{target:[A-Za-z]{3}}", h.GetRate)
		r.Get("/rates/{base:[A-Za-z]{3}}/{target:[A-Za-z]{3}}/history", h.GetRateHistory)

		r.Post("/convert", h.Convert)
		r.Get("/conversions/history", h.GetConversionHistory)

		r.Get("/currencies", h.ListCurrencies)
		r.Post("/currencies/sync", h.SyncCurrencies)

		r.Get("/favorites", h.ListFavorites)
		r.Post("/favorites", h.AddFavorite)
		r.Delete("/favorites/{id:[0-9]+}", h.RemoveFavorite)
	})
	return router
}
