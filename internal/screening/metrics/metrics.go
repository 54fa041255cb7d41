package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for screening runs.
type Metrics struct {
	// Completed runs by grade and recommendation
	RunOutcome *prometheus.CounterVec

	// Red flags raised by code
	RedFlags *prometheus.CounterVec

	// Failed runs by error code
	RunFailures *prometheus.CounterVec

	RunLatency prometheus.Histogram
}

// New creates a new Metrics instance with all screening metrics registered.
func New() *Metrics {
	return &Metrics{
		RunOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vendorscreen_screening_runs_total",
			Help: "Completed screening runs by grade and recommendation",
		}, []string{"grade", "recommendation"}),

		RedFlags: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vendorscreen_screening_red_flags_total",
			Help: "Red flags raised by screening runs",
		}, []string{"code"}),

		RunFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vendorscreen_screening_failures_total",
			Help: "Screening runs that failed before completion",
		}, []string{"code"}),

		RunLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "vendorscreen_screening_run_duration_seconds",
			Help:    "Duration of a full screening run including provider lookups",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}),
	}
}

// RecordRun records a completed run.
func (m *Metrics) RecordRun(grade, recommendation string, redFlags []string, d time.Duration) {
	if m == nil {
		return
	}
	m.RunOutcome.WithLabelValues(grade, recommendation).Inc()
	for _, code := range redFlags {
		m.RedFlags.WithLabelValues(code).Inc()
	}
	m.RunLatency.Observe(d.Seconds())
}

func (m *Metrics) RecordFailure(code string) {
	if m != nil {
		m.RunFailures.WithLabelValues(code).Inc()
	}
}
