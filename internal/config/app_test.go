package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_DefaultsAndFile(t *testing.T) {
	t.Setenv("EXCHANGE_RATE_API_KEY", "secret")
	path := writeConfig(t, `
http_server:
  port: "9090"
db_server:
  host: localhost
  port: "5432"
  name: fx
cache:
  freshness_window_seconds: 600
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.HTTPServer.Port)
	require.Equal(t, "localhost", cfg.DbServer.Host)
	require.EqualValues(t, 10, cfg.DbServer.MaxConns)
	require.Equal(t, "secret", cfg.ExchangeRateAPI.APIKey)
	require.Equal(t, "https://v6.exchangerate-api.com/v6", cfg.ExchangeRateAPI.BaseURL)
	require.Equal(t, 10*time.Minute, cfg.Cache.FreshnessWindow())
	require.Equal(t, 24*time.Hour, cfg.Cache.CatalogTTL())
	require.EqualValues(t, 10000, cfg.Cache.MaxItems)
	require.Equal(t, 10*time.Second, cfg.HTTPClient.Timeout())
	require.Equal(t, 24*time.Hour, cfg.Scheduler.CatalogSyncInterval())
	require.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("EXCHANGE_RATE_API_KEY", "secret")
	t.Setenv("CACHE_FRESHNESS_WINDOW_SECONDS", "120")
	t.Setenv("SCHEDULER_CATALOG_SYNC_INTERVAL_SECONDS", "0")
	t.Setenv("LOG_LEVEL", "debug")
	path := writeConfig(t, `
cache:
  freshness_window_seconds: 600
logging:
  level: warn
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2*time.Minute, cfg.Cache.FreshnessWindow())
	require.Zero(t, cfg.Scheduler.CatalogSyncInterval())
	require.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_MissingFileUsesEnv(t *testing.T) {
	t.Setenv("EXCHANGE_RATE_API_KEY", "secret")
	t.Setenv("DB_HOST", "db")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, "db", cfg.DbServer.Host)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("EXCHANGE_RATE_API_KEY", "")
	path := writeConfig(t, "http_server:\n  port: \"8080\"\n")

	_, err := Load(path)
	require.ErrorContains(t, err, "exchange_rate_api.api_key is required")
}

func TestValidate_RejectsNonPositiveWindows(t *testing.T) {
	cfg := AppConfig{
		HTTPClient:      HTTPClient{TimeoutSeconds: 10},
		ExchangeRateAPI: ExchangeRateAPI{BaseURL: "http://x", APIKey: "k"},
		Cache:           Cache{FreshnessWindowSeconds: 0, CatalogTTLSeconds: 60, MaxItems: 10},
		Scheduler:       Scheduler{CatalogSyncIntervalSeconds: -1},
	}

	err := cfg.Validate()
	require.ErrorContains(t, err, "cache.freshness_window_seconds")
	require.ErrorContains(t, err, "scheduler.catalog_sync_interval_seconds")
}

func TestDbServer_GetConnectionStr(t *testing.T) {
	cfg := DbServer{Host: "h", Port: "5432", User: "u", Pass: "p", Name: "n"}
	require.Equal(t, "user=u password=p host=h port=5432 dbname=n sslmode=disable", cfg.GetConnectionStr())
}
