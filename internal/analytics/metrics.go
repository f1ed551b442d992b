package analytics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Events *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		Events: f.NewCounterVec(prometheus.CounterOpts{
			Name: "explorer_analytics_events_total",
			Help: "Analytics events by name and outcome (published, failed, dropped).",
		}, []string{"event", "outcome"}),
	}
}

func (m *Metrics) inc(event, outcome string) {
	if m == nil {
		return
	}
	m.Events.WithLabelValues(event, outcome).Inc()
}

func (m *Metrics) incPublished(event string) { m.inc(event, "published") }
func (m *Metrics) incFailed(event string)    { m.inc(event, "failed") }
func (m *Metrics) incDropped(event string)   { m.inc(event, "dropped") }
