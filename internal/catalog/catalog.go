package catalog

import (
	"fmt"
	"sync"

	pkgerrors "github.com/angelmondragon/storefront-pricing/pkg/errors"
	"github.com/angelmondragon/storefront-pricing/pkg/metrics"
	"github.com/angelmondragon/storefront-pricing/pkg/validators"
)

const (
	opAddProduct    = "add_product"
	opUpdateProduct = "update_product"
	opAddCoupon     = "add_coupon"
	opUpdateCoupon  = "update_coupon"

	collectionProducts = "products"
	collectionCoupons  = "coupons"
)

// Catalog owns the ordered product and coupon collections. Every mutation
// builds a new slice and installs it under the collection's lock, so readers
// never observe a partially applied change.
type Catalog struct {
	productsMu sync.RWMutex
	products   []Product

	couponsMu sync.RWMutex
	coupons   []Coupon

	metrics *metrics.CatalogMetrics
}

// New builds a catalog seeded with the given products and coupons. Seed
// entries go through the same validation as AddProduct and AddCoupon.
func New(products []Product, coupons []Coupon, m *metrics.CatalogMetrics) (*Catalog, error) {
	c := &Catalog{metrics: m}
	for _, p := range products {
		if err := c.AddProduct(p); err != nil {
			return nil, err
		}
	}
	for _, cp := range coupons {
		if err := c.AddCoupon(cp); err != nil {
			return nil, err
		}
	}
	c.metrics.SetSize(collectionProducts, len(products))
	c.metrics.SetSize(collectionCoupons, len(coupons))
	return c, nil
}

// AddProduct appends p. The caller supplies a fresh ID.
func (c *Catalog) AddProduct(p Product) (err error) {
	defer func() { c.metrics.ObserveMutation(opAddProduct, err) }()

	if err := validateProduct(p); err != nil {
		return err
	}

	c.productsMu.Lock()
	defer c.productsMu.Unlock()

	if indexOfProduct(c.products, p.ID) >= 0 {
		return pkgerrors.New(pkgerrors.CodeInvalidProduct, "product id already exists").
			WithDetails(map[string]any{"id": p.ID})
	}

	next := make([]Product, len(c.products), len(c.products)+1)
	copy(next, c.products)
	c.products = append(next, cloneProduct(p))
	c.metrics.SetSize(collectionProducts, len(c.products))
	return nil
}

// UpdateProduct replaces the product with p.ID, keeping its position.
func (c *Catalog) UpdateProduct(p Product) (err error) {
	defer func() { c.metrics.ObserveMutation(opUpdateProduct, err) }()

	c.productsMu.Lock()
	defer c.productsMu.Unlock()

	idx := indexOfProduct(c.products, p.ID)
	if idx < 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
			WithDetails(map[string]any{"id": p.ID})
	}
	if err := validateProduct(p); err != nil {
		return err
	}

	next := make([]Product, len(c.products))
	copy(next, c.products)
	next[idx] = cloneProduct(p)
	c.products = next
	return nil
}

// Products returns the products in insertion order.
func (c *Catalog) Products() []Product {
	c.productsMu.RLock()
	defer c.productsMu.RUnlock()
	return cloneProducts(c.products)
}

// ProductByID returns the product with the given id.
func (c *Catalog) ProductByID(id string) (Product, error) {
	c.productsMu.RLock()
	defer c.productsMu.RUnlock()

	idx := indexOfProduct(c.products, id)
	if idx < 0 {
		return Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
			WithDetails(map[string]any{"id": id})
	}
	return cloneProduct(c.products[idx]), nil
}

// AddCoupon appends cp.
func (c *Catalog) AddCoupon(cp Coupon) (err error) {
	defer func() { c.metrics.ObserveMutation(opAddCoupon, err) }()

	if err := validateCoupon(cp); err != nil {
		return err
	}

	c.couponsMu.Lock()
	defer c.couponsMu.Unlock()

	if indexOfCoupon(c.coupons, cp.Code) >= 0 {
		return pkgerrors.New(pkgerrors.CodeInvalidCoupon, "coupon code already exists").
			WithDetails(map[string]any{"code": cp.Code})
	}

	next := make([]Coupon, len(c.coupons), len(c.coupons)+1)
	copy(next, c.coupons)
	c.coupons = append(next, cp)
	c.metrics.SetSize(collectionCoupons, len(c.coupons))
	return nil
}

// UpdateCoupon replaces the coupon with cp.Code, keeping its position.
func (c *Catalog) UpdateCoupon(cp Coupon) (err error) {
	defer func() { c.metrics.ObserveMutation(opUpdateCoupon, err) }()

	c.couponsMu.Lock()
	defer c.couponsMu.Unlock()

	idx := indexOfCoupon(c.coupons, cp.Code)
	if idx < 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "coupon not found").
			WithDetails(map[string]any{"code": cp.Code})
	}
	if err := validateCoupon(cp); err != nil {
		return err
	}

	next := make([]Coupon, len(c.coupons))
	copy(next, c.coupons)
	next[idx] = cp
	c.coupons = next
	return nil
}

// Coupons returns the coupons in insertion order.
func (c *Catalog) Coupons() []Coupon {
	c.couponsMu.RLock()
	defer c.couponsMu.RUnlock()
	return cloneCoupons(c.coupons)
}

// CouponByCode returns the coupon with the given code.
func (c *Catalog) CouponByCode(code string) (Coupon, error) {
	c.couponsMu.RLock()
	defer c.couponsMu.RUnlock()

	idx := indexOfCoupon(c.coupons, code)
	if idx < 0 {
		return Coupon{}, pkgerrors.New(pkgerrors.CodeNotFound, "coupon not found").
			WithDetails(map[string]any{"code": code})
	}
	return c.coupons[idx], nil
}

func indexOfProduct(products []Product, id string) int {
	for i, p := range products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func indexOfCoupon(coupons []Coupon, code string) int {
	for i, cp := range coupons {
		if cp.Code == code {
			return i
		}
	}
	return -1
}

func validateProduct(p Product) error {
	if err := validators.Struct(pkgerrors.CodeInvalidProduct, p); err != nil {
		return err
	}
	if p.Price > MaxPrice {
		return pkgerrors.New(pkgerrors.CodeInvalidProduct, "validation failed").
			WithDetails(map[string]string{"price": fmt.Sprintf("must be less than or equal to %d", MaxPrice)})
	}
	for i, tier := range p.Discounts {
		if err := tier.validate(i); err != nil {
			return err
		}
	}
	return nil
}

func validateCoupon(cp Coupon) error {
	if err := validators.Struct(pkgerrors.CodeInvalidCoupon, cp); err != nil {
		return err
	}
	if cp.Discount == nil {
		return pkgerrors.New(pkgerrors.CodeInvalidCoupon, "coupon discount is required").
			WithDetails(map[string]any{"code": cp.Code})
	}
	return cp.Discount.validate()
}
