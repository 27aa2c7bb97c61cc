package config

const (
	EnvPrefix = "STOREFRONT"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv          = "STOREFRONT_APP_ENV"
	EnvLogLevel        = "STOREFRONT_LOG_LEVEL"
	EnvLogFormat       = "STOREFRONT_LOG_FORMAT"
	EnvLogWarnStack    = "STOREFRONT_LOG_WARN_STACK"
	EnvCatalogSeedPath = "STOREFRONT_CATALOG_SEED_PATH"
	EnvPricingRounding = "STOREFRONT_PRICING_ROUNDING"
	EnvMetricsTextfile = "STOREFRONT_METRICS_TEXTFILE"
)
