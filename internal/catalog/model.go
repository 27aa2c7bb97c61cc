package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-pricing/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-pricing/pkg/errors"
)

// Product is a catalog entry with its quantity discount tiers in insertion
// order.
type Product struct {
	ID        string         `json:"id" validate:"required"`
	Name      string         `json:"name" validate:"required"`
	Price     int64          `json:"price" validate:"gte=0"`
	Stock     int            `json:"stock" validate:"gte=0"`
	Discounts []DiscountTier `json:"discounts" validate:"dive"`
}

// MaxPrice is the highest unit price the catalog accepts, in currency units.
const MaxPrice int64 = 1_000_000_000_000

// DiscountTier grants Rate off the unit price once Quantity units are bought.
type DiscountTier struct {
	Quantity int             `json:"quantity" validate:"gte=0"`
	Rate     decimal.Decimal `json:"rate"`
}

var one = decimal.NewFromInt(1)

// validate checks Rate is in [0, 1) using exact decimal comparison.
func (t DiscountTier) validate(index int) error {
	if t.Rate.IsNegative() || t.Rate.GreaterThanOrEqual(one) {
		return pkgerrors.New(pkgerrors.CodeInvalidProduct, "validation failed").
			WithDetails(map[string]string{
				fmt.Sprintf("discounts[%d].rate", index): "must be at least 0 and less than 1",
			})
	}
	return nil
}

// Coupon is an order-level discount looked up by Code.
type Coupon struct {
	Name     string   `json:"name"`
	Code     string   `json:"code" validate:"required"`
	Discount Discount `json:"-" validate:"-"`
}

// Discount is implemented only by AmountDiscount and PercentageDiscount.
type Discount interface {
	Kind() enums.DiscountKind
	validate() error
}

// AmountDiscount deducts a flat amount from the order subtotal.
type AmountDiscount struct {
	Amount int64
}

func (AmountDiscount) Kind() enums.DiscountKind { return enums.DiscountKindAmount }

func (d AmountDiscount) validate() error {
	if d.Amount < 0 {
		return pkgerrors.New(pkgerrors.CodeInvalidCoupon, "discount amount must be non-negative").
			WithDetails(map[string]any{"discount_value": d.Amount})
	}
	return nil
}

// PercentageDiscount deducts Percent (0-100) percent of the order subtotal.
type PercentageDiscount struct {
	Percent decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

func (PercentageDiscount) Kind() enums.DiscountKind { return enums.DiscountKindPercentage }

func (d PercentageDiscount) validate() error {
	if d.Percent.IsNegative() || d.Percent.GreaterThan(hundred) {
		return pkgerrors.New(pkgerrors.CodeInvalidCoupon, "discount percentage must be between 0 and 100").
			WithDetails(map[string]any{"discount_value": d.Percent.String()})
	}
	return nil
}

// DiscountValue returns the coupon's magnitude as entered: currency units for
// amount coupons, percentage points for percentage coupons.
func (c Coupon) DiscountValue() decimal.Decimal {
	switch d := c.Discount.(type) {
	case AmountDiscount:
		return decimal.NewFromInt(d.Amount)
	case PercentageDiscount:
		return d.Percent
	}
	return decimal.Zero
}

func cloneProduct(p Product) Product {
	out := p
	if p.Discounts != nil {
		out.Discounts = make([]DiscountTier, len(p.Discounts))
		copy(out.Discounts, p.Discounts)
	}
	return out
}

func cloneProducts(in []Product) []Product {
	out := make([]Product, len(in))
	for i, p := range in {
		out[i] = cloneProduct(p)
	}
	return out
}

func cloneCoupons(in []Coupon) []Coupon {
	out := make([]Coupon, len(in))
	copy(out, in)
	return out
}
