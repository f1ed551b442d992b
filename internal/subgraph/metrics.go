package subgraph

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks indexer query latency, failures and dropped records.
type Metrics struct {
	QueryDuration  *prometheus.HistogramVec
	QueryErrors    *prometheus.CounterVec
	SkippedRecords *prometheus.CounterVec
	BreakerOpen    *prometheus.GaugeVec
}

// NewMetrics registers the subgraph metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		QueryDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "explorer_subgraph_query_duration_seconds",
			Help:    "Duration of subgraph GraphQL queries",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"query"}),
		QueryErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "explorer_subgraph_query_errors_total",
			Help: "Failed subgraph queries by category",
		}, []string{"query", "category"}),
		SkippedRecords: f.NewCounterVec(prometheus.CounterOpts{
			Name: "explorer_subgraph_skipped_records_total",
			Help: "Malformed indexer records dropped during decoding",
		}, []string{"entity"}),
		BreakerOpen: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "explorer_subgraph_circuit_open",
			Help: "1 while the circuit breaker for an endpoint is open",
		}, []string{"endpoint"}),
	}
}

func (m *Metrics) observeQuery(query string, start time.Time) {
	if m == nil {
		return
	}
	m.QueryDuration.WithLabelValues(query).Observe(time.Since(start).Seconds())
}

func (m *Metrics) incrementError(query string, category ErrorCategory) {
	if m == nil {
		return
	}
	m.QueryErrors.WithLabelValues(query, string(category)).Inc()
}

func (m *Metrics) incrementSkipped(entity string) {
	if m == nil {
		return
	}
	m.SkippedRecords.WithLabelValues(entity).Inc()
}

func (m *Metrics) setBreakerOpen(endpoint string, open bool) {
	if m == nil {
		return
	}
	v := 0.0
	if open {
		v = 1
	}
	m.BreakerOpen.WithLabelValues(endpoint).Set(v)
}
