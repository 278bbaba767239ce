package retirement

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for analyses.
type Metrics struct {
	analyses     *prometheus.CounterVec
	failures     *prometheus.CounterVec
	cacheLookups *prometheus.CounterVec
}

// NewMetrics creates the analysis collectors and registers them with reg.
// A nil registerer yields working but unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		analyses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pension",
			Name:      "analyses_total",
			Help:      "Completed retirement analyses by urgency level.",
		}, []string{"urgency"}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pension",
			Name:      "analysis_failures_total",
			Help:      "Analyses rejected by the engine, by reason.",
		}, []string{"reason"}),
		cacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pension",
			Name:      "analysis_cache_lookups_total",
			Help:      "Analysis cache lookups by result.",
		}, []string{"result"}),
	}
}

func (m *Metrics) observeAnalysis(u Urgency) {
	m.analyses.WithLabelValues(string(u)).Inc()
}

func (m *Metrics) observeFailure(reason string) {
	m.failures.WithLabelValues(reason).Inc()
}

func (m *Metrics) observeCache(result string) {
	m.cacheLookups.WithLabelValues(result).Inc()
}
