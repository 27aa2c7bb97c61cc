package pricing

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/storefront-pricing/internal/catalog"
	pkgerrors "github.com/angelmondragon/storefront-pricing/pkg/errors"
	"github.com/angelmondragon/storefront-pricing/pkg/logger"
	"github.com/angelmondragon/storefront-pricing/pkg/metrics"
	"github.com/angelmondragon/storefront-pricing/pkg/validators"
)

type catalogReader interface {
	ProductByID(id string) (catalog.Product, error)
	CouponByCode(code string) (catalog.Coupon, error)
}

// Service prices cart requests against a catalog.
type Service interface {
	Quote(ctx context.Context, input QuoteInput) (*QuoteDTO, error)
}

type service struct {
	catalog catalogReader
	engine  Engine
	logg    *logger.Logger
	metrics *metrics.PricingMetrics
}

// NewService builds a quote service. A nil metrics value disables metrics.
func NewService(reader catalogReader, engine Engine, logg *logger.Logger, m *metrics.PricingMetrics) (Service, error) {
	if reader == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		catalog: reader,
		engine:  engine,
		logg:    logg,
		metrics: m,
	}, nil
}

// QuoteInput is a cart to price.
type QuoteInput struct {
	Lines      []QuoteLineInput `json:"lines" validate:"required,min=1,dive"`
	CouponCode string           `json:"coupon_code"`
}

// QuoteLineInput requests quantity units of one product.
type QuoteLineInput struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

func (s *service) Quote(ctx context.Context, input QuoteInput) (quote *QuoteDTO, err error) {
	defer func() {
		var total int64
		if quote != nil {
			total = quote.Total
		}
		s.metrics.ObserveQuote(total, err)
	}()

	if err := validators.Struct(pkgerrors.CodeValidation, input); err != nil {
		return nil, err
	}

	lines := make([]Line, 0, len(input.Lines))
	clamped := make([]bool, len(input.Lines))
	for i, requested := range input.Lines {
		p, err := s.catalog.ProductByID(requested.ProductID)
		if err != nil {
			return nil, err
		}

		qty := requested.Quantity
		if qty > p.Stock {
			lineCtx := s.logg.WithFields(s.logg.WithProductID(ctx, p.ID), map[string]any{
				"requested": qty,
				"stock":     p.Stock,
			})
			s.logg.Warn(lineCtx, "quantity exceeds stock, clamping")
			s.metrics.IncClampedLine()
			qty = p.Stock
			clamped[i] = true
		}
		lines = append(lines, Line{Product: p, Quantity: qty})
	}

	if !WithinMoneyRange(lines) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order total exceeds supported range").
			WithDetails(map[string]any{"lines": len(lines)})
	}

	var coupon *catalog.Coupon
	if code := strings.TrimSpace(input.CouponCode); code != "" {
		cp, err := s.catalog.CouponByCode(code)
		if err != nil {
			return nil, err
		}
		coupon = &cp
		ctx = s.logg.WithCouponCode(ctx, cp.Code)
	}

	result := s.engine.ComputeOrderTotal(lines, coupon)
	if coupon != nil {
		s.metrics.IncCouponApplied(coupon.Discount.Kind().String())
	}

	ctx = s.logg.WithFields(ctx, map[string]any{
		"lines":          len(result.Lines),
		"subtotal":       result.Subtotal,
		"total":          result.Total,
		"total_discount": result.TotalDiscount,
	})
	s.logg.Info(ctx, "order quoted")

	return newQuoteDTO(result, clamped), nil
}
