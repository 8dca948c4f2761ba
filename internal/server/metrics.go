package server

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dshills/archcritic/internal/schema"
)

// metrics are registered on a per-server registry so several servers (and
// tests) can coexist in one process.
type metrics struct {
	registry *prometheus.Registry
	analyses *prometheus.CounterVec
	rejected *prometheus.CounterVec
	topRPN   prometheus.Histogram
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "archcritic",
			Name:      "analyses_total",
			Help:      "Completed analyses by hosting model.",
		}, []string{"hosting"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "archcritic",
			Name:      "rejected_requests_total",
			Help:      "Requests rejected at the ingestion boundary by reason.",
		}, []string{"reason"}),
		topRPN: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "archcritic",
			Name:      "top_rpn",
			Help:      "Highest risk priority number per analysis.",
			Buckets:   []float64{100, 120, 150, 200, 250, 300, 400},
		}),
	}
	m.registry.MustRegister(m.analyses, m.rejected, m.topRPN)
	return m
}

func (m *metrics) observe(b *schema.Bundle) {
	m.analyses.WithLabelValues(string(b.Analysis.Hosting)).Inc()
	m.topRPN.Observe(float64(b.Summary.TopRPN))
}

func (m *metrics) reject(reason string) {
	m.rejected.WithLabelValues(reason).Inc()
}
