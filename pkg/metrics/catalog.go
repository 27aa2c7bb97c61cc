package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
)

// CatalogMetrics counts catalog mutations by operation and outcome.
type CatalogMetrics struct {
	mutations *prometheus.CounterVec
	size      *prometheus.GaugeVec
}

// NewCatalogMetrics registers the catalog metrics on the provided registerer.
func NewCatalogMetrics(reg prometheus.Registerer) *CatalogMetrics {
	if reg == nil {
		return &CatalogMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_mutations_total",
		Help: "Catalog add/update operations by outcome.",
	}, []string{"op", "result"})
	size := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "catalog_entries",
		Help: "Number of entries held in each catalog collection.",
	}, []string{"collection"})
	reg.MustRegister(mutations, size)
	return &CatalogMetrics{
		mutations: mutations,
		size:      size,
	}
}

// ObserveMutation records the outcome of a catalog operation.
func (c *CatalogMetrics) ObserveMutation(op string, err error) {
	if c == nil || c.mutations == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultRejected
	}
	c.mutations.WithLabelValues(normalizeLabel(op), result).Inc()
}

// SetSize records the current length of a collection.
func (c *CatalogMetrics) SetSize(collection string, n int) {
	if c == nil || c.size == nil {
		return
	}
	c.size.WithLabelValues(normalizeLabel(collection)).Set(float64(n))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
