package config

// EnvPrefix is the envconfig prefix shared by every service binary.
const EnvPrefix = "orderdesk"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names, exported for tests and tooling.
const (
	EnvAppEnv        = "ORDERDESK_APP_ENV"
	EnvPort          = "ORDERDESK_APP_PORT"
	EnvCatalogURL    = "ORDERDESK_CATALOG_URL"
	EnvOrderAPIURL   = "ORDERDESK_ORDER_API_URL"
	EnvRedisURL      = "ORDERDESK_REDIS_URL"
	EnvDBDSN         = "ORDERDESK_DB_DSN"
	EnvDBDriver      = "ORDERDESK_DB_DRIVER"
	EnvStoreVocab    = "ORDERDESK_STORE_READ_VOCABULARY"
	EnvCartTTL       = "ORDERDESK_CART_TTL"
	EnvCatalogTTL    = "ORDERDESK_CATALOG_CACHE_TTL"
	EnvOutboundLimit = "ORDERDESK_OUTBOUND_TIMEOUT"
)
