package pricing

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-pricing/internal/catalog"
	"github.com/angelmondragon/storefront-pricing/pkg/enums"
)

var (
	one      = decimal.NewFromInt(1)
	hundred  = decimal.NewFromInt(100)
	maxMoney = decimal.NewFromInt(math.MaxInt64)
)

// Line is one product and the quantity requested for it.
type Line struct {
	Product  catalog.Product
	Quantity int
}

// LineQuote is the priced form of a Line.
type LineQuote struct {
	ProductID           string
	Quantity            int
	UnitPrice           int64
	Rate                decimal.Decimal
	DiscountedUnitPrice decimal.Decimal
	TotalBeforeDiscount int64
	Total               int64
}

// OrderQuote is the priced form of a cart.
type OrderQuote struct {
	Lines               []LineQuote
	TotalBeforeDiscount int64
	Subtotal            int64
	Total               int64
	TotalDiscount       int64
	Coupon              *catalog.Coupon
}

// Engine prices lines and orders. All methods are pure.
//
// Fractional amounts are rounded with the engine's mode at two points: each
// line total and the post-coupon order total.
type Engine struct {
	rounding enums.RoundingMode
}

// NewEngine returns an engine using mode, falling back to floor for an
// unrecognized mode.
func NewEngine(mode enums.RoundingMode) Engine {
	if !mode.IsValid() {
		mode = enums.RoundingFloor
	}
	return Engine{rounding: mode}
}

// Rounding returns the engine's rounding mode.
func (e Engine) Rounding() enums.RoundingMode {
	if !e.rounding.IsValid() {
		return enums.RoundingFloor
	}
	return e.rounding
}

// EffectiveRate returns the highest rate among tiers whose threshold qty
// meets, or zero when none qualify.
func EffectiveRate(tiers []catalog.DiscountTier, qty int) decimal.Decimal {
	best := decimal.Zero
	for _, tier := range tiers {
		if tier.Quantity <= qty && tier.Rate.GreaterThan(best) {
			best = tier.Rate
		}
	}
	return best
}

// ResolveLineDiscount prices qty units of p with its best qualifying tier.
func (e Engine) ResolveLineDiscount(p catalog.Product, qty int) LineQuote {
	if qty < 0 {
		qty = 0
	}
	rate := EffectiveRate(p.Discounts, qty)
	unit := decimal.NewFromInt(p.Price).Mul(one.Sub(rate))
	total := unit.Mul(decimal.NewFromInt(int64(qty)))

	return LineQuote{
		ProductID:           p.ID,
		Quantity:            qty,
		UnitPrice:           p.Price,
		Rate:                rate,
		DiscountedUnitPrice: unit,
		TotalBeforeDiscount: clampMoney(decimal.NewFromInt(p.Price).Mul(decimal.NewFromInt(int64(qty)))),
		Total:               e.round(total),
	}
}

// ApplyCoupon applies c to an order subtotal. A nil coupon leaves the
// subtotal unchanged.
func (e Engine) ApplyCoupon(subtotal int64, c *catalog.Coupon) int64 {
	if c == nil {
		return subtotal
	}

	switch d := c.Discount.(type) {
	case catalog.AmountDiscount:
		if d.Amount >= subtotal {
			return 0
		}
		return subtotal - d.Amount
	case catalog.PercentageDiscount:
		factor := one.Sub(d.Percent.Div(hundred))
		if factor.IsNegative() {
			return 0
		}
		return e.round(decimal.NewFromInt(subtotal).Mul(factor))
	}
	return subtotal
}

// ComputeOrderTotal prices every line, sums the line totals and applies at
// most one coupon to the sum.
func (e Engine) ComputeOrderTotal(lines []Line, c *catalog.Coupon) OrderQuote {
	quote := OrderQuote{
		Lines: make([]LineQuote, 0, len(lines)),
	}
	for _, line := range lines {
		lq := e.ResolveLineDiscount(line.Product, line.Quantity)
		quote.Lines = append(quote.Lines, lq)
		quote.TotalBeforeDiscount = addMoney(quote.TotalBeforeDiscount, lq.TotalBeforeDiscount)
		quote.Subtotal = addMoney(quote.Subtotal, lq.Total)
	}

	quote.Total = e.ApplyCoupon(quote.Subtotal, c)
	quote.TotalDiscount = quote.TotalBeforeDiscount - quote.Total
	if c != nil {
		applied := *c
		quote.Coupon = &applied
	}
	return quote
}

// WithinMoneyRange reports whether the undiscounted total of lines fits in
// int64. Every other amount in a quote is bounded by that total, so engine
// results for such lines are exact; larger orders saturate at math.MaxInt64.
func WithinMoneyRange(lines []Line) bool {
	total := decimal.Zero
	for _, line := range lines {
		qty := line.Quantity
		if qty < 0 {
			qty = 0
		}
		total = total.Add(decimal.NewFromInt(line.Product.Price).Mul(decimal.NewFromInt(int64(qty))))
	}
	return total.LessThanOrEqual(maxMoney)
}

func (e Engine) round(d decimal.Decimal) int64 {
	switch e.Rounding() {
	case enums.RoundingHalfUp:
		return clampMoney(d.Round(0))
	default:
		return clampMoney(d.Floor())
	}
}

func clampMoney(d decimal.Decimal) int64 {
	if d.IsNegative() {
		return 0
	}
	if d.GreaterThan(maxMoney) {
		return math.MaxInt64
	}
	return d.IntPart()
}

func addMoney(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}
