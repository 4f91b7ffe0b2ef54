package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records upstream fetch outcomes and cart activity.
type StorefrontMetrics struct {
	fetchDuration *prometheus.HistogramVec
	fetchTotal    *prometheus.CounterVec
	cartOps       *prometheus.CounterVec
}

// NewStorefrontMetrics registers the storefront metrics on the provided
// registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	fetchDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_fetch_duration_seconds",
		Help:    "Duration of catalog source fetches in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})
	fetchTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_fetch_total",
		Help: "Catalog source fetches by outcome.",
	}, []string{"kind", "outcome"})
	cartOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_operations_total",
		Help: "Cart mutations by operation.",
	}, []string{"op"})
	reg.MustRegister(fetchDuration, fetchTotal, cartOps)
	return &StorefrontMetrics{
		fetchDuration: fetchDuration,
		fetchTotal:    fetchTotal,
		cartOps:       cartOps,
	}
}

// ObserveFetch records one upstream fetch attempt.
func (m *StorefrontMetrics) ObserveFetch(kind string, duration time.Duration, err error) {
	if m == nil || m.fetchDuration == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.fetchDuration.WithLabelValues(normalizeLabel(kind)).Observe(duration.Seconds())
	m.fetchTotal.WithLabelValues(normalizeLabel(kind), outcome).Inc()
}

// IncCartOp increments the counter for the named cart mutation.
func (m *StorefrontMetrics) IncCartOp(op string) {
	if m == nil || m.cartOps == nil {
		return
	}
	m.cartOps.WithLabelValues(normalizeLabel(op)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
