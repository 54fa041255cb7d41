package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for provider lookups and the evidence cache.
type Metrics struct {
	// Cache outcomes by provider
	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec

	// Live lookups by provider and resulting status
	Lookups        *prometheus.CounterVec
	LookupDuration *prometheus.HistogramVec
}

// New creates a new Metrics instance with all evidence metrics registered.
func New() *Metrics {
	return &Metrics{
		CacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vendorscreen_evidence_cache_hits_total",
			Help: "Evidence cache hits by provider",
		}, []string{"provider"}),

		CacheMisses: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vendorscreen_evidence_cache_misses_total",
			Help: "Evidence cache misses by provider",
		}, []string{"provider"}),

		Lookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vendorscreen_provider_lookups_total",
			Help: "Live provider lookups by provider and status",
		}, []string{"provider", "status"}), // status: ok, disabled, not_applicable, error

		LookupDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vendorscreen_provider_lookup_duration_seconds",
			Help:    "Duration of live provider lookups",
			Buckets: []float64{0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider"}),
	}
}

func (m *Metrics) RecordCacheHit(provider string) {
	if m != nil {
		m.CacheHits.WithLabelValues(provider).Inc()
	}
}

func (m *Metrics) RecordCacheMiss(provider string) {
	if m != nil {
		m.CacheMisses.WithLabelValues(provider).Inc()
	}
}

// ObserveLookup records one live lookup.
func (m *Metrics) ObserveLookup(provider, status string, d time.Duration) {
	if m != nil {
		m.Lookups.WithLabelValues(provider, status).Inc()
		m.LookupDuration.WithLabelValues(provider).Observe(d.Seconds())
	}
}
