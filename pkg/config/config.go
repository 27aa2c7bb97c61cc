package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/angelmondragon/storefront-pricing/pkg/enums"
)

type Config struct {
	App     AppConfig
	Catalog CatalogConfig
	Pricing PricingConfig
	Metrics MetricsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if _, err := cfg.Pricing.RoundingMode(); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"STOREFRONT_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type CatalogConfig struct {
	SeedPath string `envconfig:"STOREFRONT_CATALOG_SEED_PATH" required:"true"`
}

type PricingConfig struct {
	Rounding string `envconfig:"STOREFRONT_PRICING_ROUNDING" default:"floor"`
}

// RoundingMode returns the parsed rounding mode.
func (p PricingConfig) RoundingMode() (enums.RoundingMode, error) {
	return enums.ParseRoundingMode(p.Rounding)
}

type MetricsConfig struct {
	TextfilePath string `envconfig:"STOREFRONT_METRICS_TEXTFILE"`
}

// Enabled reports whether metrics should be written on exit.
func (m MetricsConfig) Enabled() bool {
	return strings.TrimSpace(m.TextfilePath) != ""
}
