package metrics

import "github.com/prometheus/client_golang/prometheus"

// PricingMetrics records quote activity.
type PricingMetrics struct {
	quotes        *prometheus.CounterVec
	couponApplied *prometheus.CounterVec
	clampedLines  prometheus.Counter
	orderTotal    prometheus.Histogram
}

// NewPricingMetrics registers the pricing metrics on the provided registerer.
func NewPricingMetrics(reg prometheus.Registerer) *PricingMetrics {
	if reg == nil {
		return &PricingMetrics{}
	}
	quotes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_quotes_total",
		Help: "Order quotes computed by outcome.",
	}, []string{"result"})
	couponApplied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_coupon_applied_total",
		Help: "Coupons applied to quotes by discount kind.",
	}, []string{"kind"})
	clampedLines := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pricing_lines_clamped_total",
		Help: "Cart lines whose quantity was reduced to available stock.",
	})
	orderTotal := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pricing_order_total",
		Help:    "Final payable order totals in currency units.",
		Buckets: prometheus.ExponentialBuckets(1000, 4, 8),
	})
	reg.MustRegister(quotes, couponApplied, clampedLines, orderTotal)
	return &PricingMetrics{
		quotes:        quotes,
		couponApplied: couponApplied,
		clampedLines:  clampedLines,
		orderTotal:    orderTotal,
	}
}

// ObserveQuote records a quote outcome and, on success, its final total.
func (p *PricingMetrics) ObserveQuote(total int64, err error) {
	if p == nil || p.quotes == nil {
		return
	}
	if err != nil {
		p.quotes.WithLabelValues(ResultRejected).Inc()
		return
	}
	p.quotes.WithLabelValues(ResultOK).Inc()
	p.orderTotal.Observe(float64(total))
}

// IncCouponApplied counts a coupon of the given kind applied to a quote.
func (p *PricingMetrics) IncCouponApplied(kind string) {
	if p == nil || p.couponApplied == nil {
		return
	}
	p.couponApplied.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncClampedLine counts a cart line reduced to available stock.
func (p *PricingMetrics) IncClampedLine() {
	if p == nil || p.clampedLines == nil {
		return
	}
	p.clampedLines.Inc()
}
