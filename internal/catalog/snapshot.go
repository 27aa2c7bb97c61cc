package catalog

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-pricing/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-pricing/pkg/errors"
	"github.com/angelmondragon/storefront-pricing/pkg/metrics"
	"github.com/angelmondragon/storefront-pricing/pkg/validators"
)

var (
	maxAmount = decimal.NewFromInt(math.MaxInt64)
	minAmount = decimal.NewFromInt(math.MinInt64)
)

// Snapshot is the external JSON form of a catalog.
type Snapshot struct {
	Products []ProductDTO `json:"products" validate:"dive"`
	Coupons  []CouponDTO  `json:"coupons" validate:"dive"`
}

// ProductDTO is the snapshot form of a Product.
type ProductDTO struct {
	ID        string            `json:"id" validate:"required"`
	Name      string            `json:"name"`
	Price     int64             `json:"price"`
	Stock     int               `json:"stock"`
	Discounts []DiscountTierDTO `json:"discounts"`
}

// DiscountTierDTO is the snapshot form of a DiscountTier.
type DiscountTierDTO struct {
	Quantity int             `json:"quantity"`
	Rate     decimal.Decimal `json:"rate"`
}

// CouponDTO is the snapshot form of a Coupon.
type CouponDTO struct {
	Name          string          `json:"name"`
	Code          string          `json:"code" validate:"required"`
	DiscountType  string          `json:"discount_type" validate:"required,oneof=amount percentage"`
	DiscountValue decimal.Decimal `json:"discount_value"`
}

// DecodeSnapshot reads a JSON snapshot. Shape problems are reported as
// validation errors; value ranges are checked when the snapshot is loaded.
func DecodeSnapshot(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	if err := validators.DecodeJSON(r, &snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// ReadSnapshotFile decodes the snapshot stored at path.
func ReadSnapshotFile(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()
	return DecodeSnapshot(f)
}

// FromSnapshot builds a catalog seeded from snap.
func FromSnapshot(snap Snapshot, m *metrics.CatalogMetrics) (*Catalog, error) {
	products := make([]Product, 0, len(snap.Products))
	for _, dto := range snap.Products {
		products = append(products, dto.toProduct())
	}
	coupons := make([]Coupon, 0, len(snap.Coupons))
	for _, dto := range snap.Coupons {
		cp, err := dto.toCoupon()
		if err != nil {
			return nil, err
		}
		coupons = append(coupons, cp)
	}
	return New(products, coupons, m)
}

// Snapshot exports the current catalog contents.
func (c *Catalog) Snapshot() Snapshot {
	products := c.Products()
	coupons := c.Coupons()

	snap := Snapshot{
		Products: make([]ProductDTO, len(products)),
		Coupons:  make([]CouponDTO, len(coupons)),
	}
	for i, p := range products {
		snap.Products[i] = NewProductDTO(p)
	}
	for i, cp := range coupons {
		snap.Coupons[i] = NewCouponDTO(cp)
	}
	return snap
}

// NewProductDTO converts a product into its snapshot form.
func NewProductDTO(p Product) ProductDTO {
	dto := ProductDTO{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Stock:     p.Stock,
		Discounts: make([]DiscountTierDTO, len(p.Discounts)),
	}
	for i, tier := range p.Discounts {
		dto.Discounts[i] = DiscountTierDTO{
			Quantity: tier.Quantity,
			Rate:     tier.Rate,
		}
	}
	return dto
}

// NewCouponDTO converts a coupon into its snapshot form.
func NewCouponDTO(cp Coupon) CouponDTO {
	dto := CouponDTO{
		Name:          cp.Name,
		Code:          cp.Code,
		DiscountValue: cp.DiscountValue(),
	}
	if cp.Discount != nil {
		dto.DiscountType = cp.Discount.Kind().String()
	}
	return dto
}

func (dto ProductDTO) toProduct() Product {
	p := Product{
		ID:        dto.ID,
		Name:      dto.Name,
		Price:     dto.Price,
		Stock:     dto.Stock,
		Discounts: make([]DiscountTier, len(dto.Discounts)),
	}
	for i, tier := range dto.Discounts {
		p.Discounts[i] = DiscountTier{
			Quantity: tier.Quantity,
			Rate:     tier.Rate,
		}
	}
	return p
}

func (dto CouponDTO) toCoupon() (Coupon, error) {
	kind, err := enums.ParseDiscountKind(dto.DiscountType)
	if err != nil {
		return Coupon{}, pkgerrors.Wrap(pkgerrors.CodeInvalidCoupon, err, "unknown discount type").
			WithDetails(map[string]any{"code": dto.Code})
	}

	cp := Coupon{Name: dto.Name, Code: dto.Code}
	switch kind {
	case enums.DiscountKindAmount:
		if !dto.DiscountValue.IsInteger() {
			return Coupon{}, pkgerrors.New(pkgerrors.CodeInvalidCoupon, "discount amount must be a whole currency value").
				WithDetails(map[string]any{"code": dto.Code, "discount_value": dto.DiscountValue.String()})
		}
		if dto.DiscountValue.GreaterThan(maxAmount) || dto.DiscountValue.LessThan(minAmount) {
			return Coupon{}, pkgerrors.New(pkgerrors.CodeInvalidCoupon, "discount amount out of range").
				WithDetails(map[string]any{"code": dto.Code, "discount_value": dto.DiscountValue.String()})
		}
		cp.Discount = AmountDiscount{Amount: dto.DiscountValue.IntPart()}
	case enums.DiscountKindPercentage:
		cp.Discount = PercentageDiscount{Percent: dto.DiscountValue}
	}
	return cp, nil
}
