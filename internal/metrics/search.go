// Package metrics defines the service Prometheus metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "placedex",
			Name:      "search_requests_total",
			Help:      "Completed searches by mode, terminal strategy, and status",
		},
		[]string{"mode", "strategy", "status"},
	)

	SearchFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "placedex",
			Name:      "search_fallbacks_total",
			Help:      "Strategy failures that triggered a fallback transition",
		},
		[]string{"strategy"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "placedex",
			Name:      "search_duration_seconds",
			Help:      "Full search chain duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"mode", "strategy"},
	)
)

// RegisterSearchMetrics registers search metrics explicitly (no init()).
// Safe to call once at startup.
func RegisterSearchMetrics() {
	prometheus.MustRegister(
		SearchRequestsTotal,
		SearchFallbacksTotal,
		SearchDuration,
	)
}
