package app

import (
	"context"
	"fxconvert/internal/platform/db"
	httpserver "fxconvert/internal/platform/http"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fxconvert/internal/adapters/cache"
	"fxconvert/internal/adapters/httpclient"
	"fxconvert/internal/adapters/postgres"
	"fxconvert/internal/api"
	"fxconvert/internal/config"
	"fxconvert/internal/history"
	"fxconvert/internal/rate"
	"fxconvert/internal/rate/handler"

	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts HTTP server and scheduler
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	if parsedLvl, parseErr := logrus.ParseLevel(appCfg.Logging.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect, migrations)
	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	pool, err := db.Connect(startupCtx, appCfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return err
	}
	defer pool.Close()
	logrus.Info("✅ Postgres connection successful")

	if err = db.Migrate(startupCtx, appCfg.DbServer); err != nil {
		logrus.WithError(err).Error("Error applying migrations")
		return err
	}
	logrus.Info("✅ Migrations applied")

	memory, err := cache.NewMemory(appCfg.Cache.MaxItems)
	if err != nil {
		return err
	}
	defer memory.Close()

	// Provider client, the same timeout bounds one provider step of the resolver
	httpTimeout := appCfg.HTTPClient.Timeout()
	rateClient := httpclient.NewExchangeRateClient(
		&http.Client{Timeout: httpTimeout},
		strings.TrimSuffix(appCfg.ExchangeRateAPI.BaseURL, "/"),
		appCfg.ExchangeRateAPI.APIKey,
	)

	// Repositories
	rateStore := postgres.NewRateStore(pool)
	currencyRepo := postgres.NewCurrencyRepository(pool)
	conversionRepo := postgres.NewConversionRepository(pool)
	favoriteRepo := postgres.NewFavoriteRepository(pool)

	// Services
	resolver := rate.NewResolver(memory, rateStore, rateClient, appCfg.Cache.FreshnessWindow(),
		rate.WithProviderTimeout(httpTimeout))
	converter := rate.NewConverter(resolver)
	catalog := rate.NewCatalog(rateClient, currencyRepo, memory, appCfg.Cache.CatalogTTL())
	historyService := history.NewService(conversionRepo, favoriteRepo)

	scheduler := rate.NewScheduler(catalog, appCfg.Scheduler.CatalogSyncInterval())
	// Ensure scheduler stops before DB pool closes
	defer func() {
		if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
		}
	}()
	if startErr := scheduler.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start scheduler")
		return startErr
	}
	logrus.Info("✅ Scheduler activation successful")

	// Handlers and router
	h := handler.NewHandler(rate.NewValidator(), resolver, converter, catalog, historyService)
	router := api.NewRouter(h)

	logrus.WithField("port", appCfg.HTTPServer.Port).Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		// Cancel the root context to stop scheduler and other in-flight work
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}
