package main

import (
	"context"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/storefront-pricing/internal/catalog"
	"github.com/angelmondragon/storefront-pricing/internal/pricing"
	"github.com/angelmondragon/storefront-pricing/pkg/config"
	"github.com/angelmondragon/storefront-pricing/pkg/logger"
	"github.com/angelmondragon/storefront-pricing/pkg/metrics"
	"github.com/angelmondragon/storefront-pricing/pkg/responses"
	"github.com/angelmondragon/storefront-pricing/pkg/validators"
)

// main prices the cart read from the file named by the first argument, or
// from stdin, against the seeded catalog and prints the result as JSON.
func main() {
	logg := logger.New(logger.Options{ServiceName: "quote"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "quote",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})

	ctx := logg.WithRequestID(context.Background(), uuid.NewString())
	quote, err := run(ctx, cfg, logg)
	if err != nil {
		os.Exit(responses.WriteError(ctx, logg, os.Stdout, err))
	}
	if err := responses.WriteSuccess(os.Stdout, quote); err != nil {
		logg.Error(ctx, "failed to write quote", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*pricing.QuoteDTO, error) {
	reg := prometheus.NewRegistry()
	if cfg.Metrics.Enabled() {
		defer func() {
			if err := prometheus.WriteToTextfile(cfg.Metrics.TextfilePath, reg); err != nil {
				logg.Error(ctx, "failed to write metrics textfile", err)
			}
		}()
	}

	snap, err := catalog.ReadSnapshotFile(cfg.Catalog.SeedPath)
	if err != nil {
		return nil, err
	}
	store, err := catalog.FromSnapshot(snap, metrics.NewCatalogMetrics(reg))
	if err != nil {
		return nil, err
	}
	logg.Info(logg.WithFields(ctx, map[string]any{
		"products":  len(snap.Products),
		"coupons":   len(snap.Coupons),
		"seed_path": cfg.Catalog.SeedPath,
	}), "catalog seeded")

	mode, err := cfg.Pricing.RoundingMode()
	if err != nil {
		return nil, err
	}
	svc, err := pricing.NewService(store, pricing.NewEngine(mode), logg, metrics.NewPricingMetrics(reg))
	if err != nil {
		return nil, err
	}

	in, closeIn, err := openCart()
	if err != nil {
		return nil, err
	}
	defer closeIn()

	var input pricing.QuoteInput
	if err := validators.DecodeJSON(in, &input); err != nil {
		return nil, err
	}

	return svc.Quote(ctx, input)
}

func openCart() (io.Reader, func(), error) {
	if len(os.Args) < 2 || os.Args[1] == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(os.Args[1])
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}
