package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Outcome label values for layoutsTotal.
const (
	outcomeComplete = "complete"
	outcomeEmpty    = "empty"
	outcomeError    = "error"
)

type metrics struct {
	registry *prometheus.Registry

	layoutsTotal     *prometheus.CounterVec
	layoutDuration   prometheus.Histogram
	searchCandidates prometheus.Histogram
	diagnosticsTotal *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		layoutsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "roomfit",
				Name:      "layouts_total",
				Help:      "Layout requests handled, by outcome.",
			},
			[]string{"outcome"},
		),
		layoutDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "roomfit",
				Name:      "layout_duration_seconds",
				Help:      "Time spent generating one layout.",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
			},
		),
		searchCandidates: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "roomfit",
				Name:      "search_candidates",
				Help:      "Candidate placements tried per layout request.",
				Buckets:   prometheus.ExponentialBuckets(1, 10, 7),
			},
		),
		diagnosticsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "roomfit",
				Name:      "diagnostics_total",
				Help:      "Diagnostics reported while generating layouts, by kind.",
			},
			[]string{"kind"},
		),
	}
	m.registry.MustRegister(
		m.layoutsTotal,
		m.layoutDuration,
		m.searchCandidates,
		m.diagnosticsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}
