package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultConfigFile = "config.yaml"

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

func (c HTTPClient) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type ExchangeRateAPI struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

type Cache struct {
	FreshnessWindowSeconds int   `mapstructure:"freshness_window_seconds"`
	CatalogTTLSeconds      int   `mapstructure:"catalog_ttl_seconds"`
	MaxItems               int64 `mapstructure:"max_items"`
}

func (c Cache) FreshnessWindow() time.Duration {
	return time.Duration(c.FreshnessWindowSeconds) * time.Second
}

func (c Cache) CatalogTTL() time.Duration {
	return time.Duration(c.CatalogTTLSeconds) * time.Second
}

type Scheduler struct {
	// 0 disables the periodic catalog sync.
	CatalogSyncIntervalSeconds int `mapstructure:"catalog_sync_interval_seconds"`
}

func (s Scheduler) CatalogSyncInterval() time.Duration {
	return time.Duration(s.CatalogSyncIntervalSeconds) * time.Second
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type AppConfig struct {
	HTTPServer      HTTPServer      `mapstructure:"http_server"`
	DbServer        DbServer        `mapstructure:"db_server"`
	HTTPClient      HTTPClient      `mapstructure:"http_client"`
	ExchangeRateAPI ExchangeRateAPI `mapstructure:"exchange_rate_api"`
	Cache           Cache           `mapstructure:"cache"`
	Scheduler       Scheduler       `mapstructure:"scheduler"`
	Logging         Logging         `mapstructure:"logging"`
}

func (cfg *AppConfig) Validate() error {
	var errs []error
	if cfg.ExchangeRateAPI.APIKey == "" {
		errs = append(errs, errors.New("exchange_rate_api.api_key is required"))
	}
	if cfg.ExchangeRateAPI.BaseURL == "" {
		errs = append(errs, errors.New("exchange_rate_api.base_url is required"))
	}
	if cfg.HTTPClient.TimeoutSeconds <= 0 {
		errs = append(errs, errors.New("http_client.timeout_seconds must be positive"))
	}
	if cfg.Cache.FreshnessWindowSeconds <= 0 {
		errs = append(errs, errors.New("cache.freshness_window_seconds must be positive"))
	}
	if cfg.Cache.CatalogTTLSeconds <= 0 {
		errs = append(errs, errors.New("cache.catalog_ttl_seconds must be positive"))
	}
	if cfg.Cache.MaxItems <= 0 {
		errs = append(errs, errors.New("cache.max_items must be positive"))
	}
	if cfg.Scheduler.CatalogSyncIntervalSeconds < 0 {
		errs = append(errs, errors.New("scheduler.catalog_sync_interval_seconds must not be negative"))
	}
	return errors.Join(errs...)
}

// Init loads an optional .env, then config.yaml (or CONFIG_FILE) with env overrides.
func Init() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = defaultConfigFile
	}
	return Load(path)
}

// Load reads the yaml file at path, applies defaults and env bindings and validates the result.
// A missing file is not an error, every key can come from the environment.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, os.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetDefault("http_server.port", "8080")
	v.SetDefault("db_server.max_conns", 10)
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("exchange_rate_api.base_url", "https://v6.exchangerate-api.com/v6")
	v.SetDefault("cache.freshness_window_seconds", 3600)
	v.SetDefault("cache.catalog_ttl_seconds", 86400)
	v.SetDefault("cache.max_items", 10000)
	v.SetDefault("scheduler.catalog_sync_interval_seconds", 86400)
	v.SetDefault("logging.level", "info")

	_ = v.BindEnv("http_server.port", "HTTP_PORT")

	// db server env vars
	_ = v.BindEnv("db_server.host", "DB_HOST")
	_ = v.BindEnv("db_server.port", "DB_PORT")
	_ = v.BindEnv("db_server.user", "DB_USER")
	_ = v.BindEnv("db_server.pass", "DB_PASS")
	_ = v.BindEnv("db_server.name", "DB_NAME")
	_ = v.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	// provider env vars
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")
	_ = v.BindEnv("exchange_rate_api.base_url", "EXCHANGE_RATE_API_URL")
	_ = v.BindEnv("exchange_rate_api.api_key", "EXCHANGE_RATE_API_KEY")

	_ = v.BindEnv("cache.freshness_window_seconds", "CACHE_FRESHNESS_WINDOW_SECONDS")
	_ = v.BindEnv("cache.catalog_ttl_seconds", "CACHE_CATALOG_TTL_SECONDS")
	_ = v.BindEnv("cache.max_items", "CACHE_MAX_ITEMS")
	_ = v.BindEnv("scheduler.catalog_sync_interval_seconds", "SCHEDULER_CATALOG_SYNC_INTERVAL_SECONDS")
	_ = v.BindEnv("logging.level", "LOG_LEVEL")

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
