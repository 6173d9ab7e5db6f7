// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors for snapshot loading and aggregation.
// All methods are safe to call on a nil *Metrics.
type Metrics struct {
	// Snapshot fetch latency by operation
	FetchLatency *prometheus.HistogramVec

	// Failed fetches by operation
	FetchFailures *prometheus.CounterVec

	// Aggregation latency by aggregator
	AggregateLatency *prometheus.HistogramVec

	// Records dropped during normalization by reason
	DroppedRecords *prometheus.CounterVec
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		FetchLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "civic_snapshot_fetch_duration_seconds",
			Help:    "Duration of snapshot fetches from the data store by operation",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"operation"}), // operation: "voters", "candidates", "candidate", "proposals", "catalog"

		FetchFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "civic_snapshot_fetch_failures_total",
			Help: "Total failed snapshot fetches by operation",
		}, []string{"operation"}),

		AggregateLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "civic_aggregate_duration_seconds",
			Help:    "Duration of aggregations by aggregator",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}, []string{"aggregator"}), // aggregator: "demographics", "category_scores", "totals", "candidate_support"

		DroppedRecords: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "civic_snapshot_dropped_records_total",
			Help: "Records dropped while normalizing a snapshot by reason",
		}, []string{"reason"}),
	}
}

// ObserveFetch records the outcome and duration of one fetch
func (m *Metrics) ObserveFetch(operation string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.FetchLatency.WithLabelValues(operation).Observe(d.Seconds())
	if err != nil {
		m.FetchFailures.WithLabelValues(operation).Inc()
	}
}

// ObserveAggregate records how long an aggregator took
func (m *Metrics) ObserveAggregate(aggregator string, d time.Duration) {
	if m != nil {
		m.AggregateLatency.WithLabelValues(aggregator).Observe(d.Seconds())
	}
}

// AddDropped counts records dropped during normalization
func (m *Metrics) AddDropped(reason string, n int) {
	if m != nil && n > 0 {
		m.DroppedRecords.WithLabelValues(reason).Add(float64(n))
	}
}
