package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the timelock module: cache effectiveness
// and the cost of the aggregators on the read path.
type Metrics struct {
	CacheHits         *prometheus.CounterVec
	CacheMisses       *prometheus.CounterVec
	AggregateDuration *prometheus.HistogramVec
	Refreshes         *prometheus.CounterVec
}

// New creates the timelock metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CacheHits: f.NewCounterVec(prometheus.CounterOpts{
			Name: "explorer_timelock_cache_hits_total",
			Help: "Cached payload reads served from cache",
		}, []string{"kind"}),
		CacheMisses: f.NewCounterVec(prometheus.CounterOpts{
			Name: "explorer_timelock_cache_misses_total",
			Help: "Cached payload reads that went upstream",
		}, []string{"kind"}),
		AggregateDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "explorer_timelock_aggregate_duration_seconds",
			Help:    "Duration of signer reconstruction and timeline merge",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}, []string{"aggregator"}),
		Refreshes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "explorer_timelock_refreshes_total",
			Help: "Cache refreshes by outcome",
		}, []string{"outcome"}),
	}
}

// IncrementCacheHit records a cache hit for kind.
func (m *Metrics) IncrementCacheHit(kind string) {
	if m == nil {
		return
	}
	m.CacheHits.WithLabelValues(kind).Inc()
}

// IncrementCacheMiss records a cache miss for kind.
func (m *Metrics) IncrementCacheMiss(kind string) {
	if m == nil {
		return
	}
	m.CacheMisses.WithLabelValues(kind).Inc()
}

// ObserveAggregate records how long an aggregator took.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveAggregate(aggregator string, start time.Time) {
	if m == nil {
		return
	}
	m.AggregateDuration.WithLabelValues(aggregator).Observe(time.Since(start).Seconds())
}

// IncrementRefresh records a refresh outcome ("ok" or "error").
func (m *Metrics) IncrementRefresh(outcome string) {
	if m == nil {
		return
	}
	m.Refreshes.WithLabelValues(outcome).Inc()
}
