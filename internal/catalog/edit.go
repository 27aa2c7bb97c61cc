package catalog

import "github.com/google/uuid"

// NewProductID returns a fresh, collision-resistant product identifier.
func NewProductID() string {
	return uuid.NewString()
}

// NewProduct builds a product with a fresh ID and no discount tiers.
func NewProduct(name string, price int64, stock int) Product {
	return Product{
		ID:        NewProductID(),
		Name:      name,
		Price:     price,
		Stock:     stock,
		Discounts: []DiscountTier{},
	}
}

// WithName returns a copy of p renamed to name; persist it with UpdateProduct.
func WithName(p Product, name string) Product {
	out := cloneProduct(p)
	out.Name = name
	return out
}

// WithPrice returns a copy of p with its unit price set to price.
func WithPrice(p Product, price int64) Product {
	out := cloneProduct(p)
	out.Price = price
	return out
}

// WithStock returns a copy of p with its stock set to stock.
func WithStock(p Product, stock int) Product {
	out := cloneProduct(p)
	out.Stock = stock
	return out
}

// WithDiscountTier appends tier after the existing tiers.
func WithDiscountTier(p Product, tier DiscountTier) Product {
	out := cloneProduct(p)
	out.Discounts = append(out.Discounts, tier)
	return out
}

// WithoutDiscountTier drops the tier at index. An out-of-range index returns
// an unmodified copy.
func WithoutDiscountTier(p Product, index int) Product {
	out := cloneProduct(p)
	if index < 0 || index >= len(out.Discounts) {
		return out
	}
	out.Discounts = append(out.Discounts[:index], out.Discounts[index+1:]...)
	return out
}
