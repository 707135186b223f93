package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	Catalog CatalogConfig
	OrderAPI OrderAPIConfig
	Cart    CartConfig
	Redis   RedisConfig
	DB      DBConfig
	Store   StoreConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ORDERDESK_APP_ENV" required:"true"`
	Port         string `envconfig:"ORDERDESK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ORDERDESK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ORDERDESK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// CatalogConfig points at the external product catalog.
type CatalogConfig struct {
	URL      string        `envconfig:"ORDERDESK_CATALOG_URL" required:"true"`
	Timeout  time.Duration `envconfig:"ORDERDESK_CATALOG_TIMEOUT" default:"10s"`
	CacheTTL time.Duration `envconfig:"ORDERDESK_CATALOG_CACHE_TTL" default:"2m"`
	// FallbackUnit labels products whose unit descriptor is missing upstream.
	FallbackUnit string `envconfig:"ORDERDESK_CATALOG_FALLBACK_UNIT" default:"KG"`
}

// OrderAPIConfig points at the backend order store.
type OrderAPIConfig struct {
	BaseURL string        `envconfig:"ORDERDESK_ORDER_API_URL" required:"true"`
	Timeout time.Duration `envconfig:"ORDERDESK_ORDER_API_TIMEOUT" default:"10s"`
}

type CartConfig struct {
	TTL time.Duration `envconfig:"ORDERDESK_CART_TTL" default:"24h"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ORDERDESK_REDIS_URL" required:"true"`
	Address      string        `envconfig:"ORDERDESK_REDIS_ADDR"`
	Password     string        `envconfig:"ORDERDESK_REDIS_PASSWORD"`
	DB           int           `envconfig:"ORDERDESK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ORDERDESK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ORDERDESK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ORDERDESK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ORDERDESK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ORDERDESK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// DBConfig configures the reference order store database.
type DBConfig struct {
	DSN    string `envconfig:"ORDERDESK_DB_DSN" default:"file:orderdesk.db?cache=shared"`
	Driver string `envconfig:"ORDERDESK_DB_DRIVER" default:"sqlite"`

	MaxOpenConns    int           `envconfig:"ORDERDESK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ORDERDESK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ORDERDESK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ORDERDESK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// StoreConfig tunes the reference order store's wire behavior.
type StoreConfig struct {
	// ReadVocabulary selects which field vocabulary GET responses use:
	// "legacy" (the historical backend's keys) or "canonical".
	ReadVocabulary string `envconfig:"ORDERDESK_STORE_READ_VOCABULARY" default:"legacy"`
	Port           string `envconfig:"ORDERDESK_STORE_PORT" default:"8000"`
}

func (s StoreConfig) EmitsLegacy() bool {
	return !strings.EqualFold(s.ReadVocabulary, "canonical")
}
