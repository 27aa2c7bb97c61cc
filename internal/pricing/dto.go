package pricing

// QuoteDTO is the response form of an OrderQuote.
type QuoteDTO struct {
	Lines               []QuoteLineDTO  `json:"lines"`
	Coupon              *QuoteCouponDTO `json:"coupon,omitempty"`
	TotalBeforeDiscount int64           `json:"total_before_discount"`
	Subtotal            int64           `json:"subtotal"`
	TotalDiscount       int64           `json:"total_discount"`
	Total               int64           `json:"total"`
}

type QuoteLineDTO struct {
	ProductID           string `json:"product_id"`
	Quantity            int    `json:"quantity"`
	Clamped             bool   `json:"clamped,omitempty"`
	UnitPrice           int64  `json:"unit_price"`
	Rate                string `json:"rate"`
	DiscountedUnitPrice string `json:"discounted_unit_price"`
	TotalBeforeDiscount int64  `json:"total_before_discount"`
	Total               int64  `json:"total"`
}

type QuoteCouponDTO struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	DiscountType  string `json:"discount_type"`
	DiscountValue string `json:"discount_value"`
}

func newQuoteDTO(q OrderQuote, clamped []bool) *QuoteDTO {
	dto := &QuoteDTO{
		Lines:               make([]QuoteLineDTO, len(q.Lines)),
		TotalBeforeDiscount: q.TotalBeforeDiscount,
		Subtotal:            q.Subtotal,
		TotalDiscount:       q.TotalDiscount,
		Total:               q.Total,
	}
	for i, line := range q.Lines {
		dto.Lines[i] = QuoteLineDTO{
			ProductID:           line.ProductID,
			Quantity:            line.Quantity,
			Clamped:             i < len(clamped) && clamped[i],
			UnitPrice:           line.UnitPrice,
			Rate:                line.Rate.String(),
			DiscountedUnitPrice: line.DiscountedUnitPrice.StringFixed(2),
			TotalBeforeDiscount: line.TotalBeforeDiscount,
			Total:               line.Total,
		}
	}
	if q.Coupon != nil && q.Coupon.Discount != nil {
		dto.Coupon = &QuoteCouponDTO{
			Code:          q.Coupon.Code,
			Name:          q.Coupon.Name,
			DiscountType:  q.Coupon.Discount.Kind().String(),
			DiscountValue: q.Coupon.DiscountValue().String(),
		}
	}
	return dto
}
