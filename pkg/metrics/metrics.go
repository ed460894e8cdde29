// Package metrics holds the Prometheus collectors for the dashboard service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ProviderFetchTotal counts batched provider fetches per domain and
	// outcome.
	ProviderFetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_provider_fetch_total",
			Help: "Batched provider fetches, labeled by data domain and outcome.",
		},
		[]string{"domain", "outcome"},
	)

	// ProviderFetchDuration observes upstream fetch latency per domain.
	ProviderFetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashboard_provider_fetch_duration_seconds",
			Help:    "Upstream fetch latency per data domain.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"domain"},
	)

	// ProviderCacheHits counts Refresh calls served from the content cache
	// without an upstream fetch.
	ProviderCacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_provider_cache_hits_total",
			Help: "Provider refreshes served from the fingerprint cache.",
		},
		[]string{"domain"},
	)

	// RequirementSetSize observes aggregated key set sizes per domain.
	RequirementSetSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashboard_requirement_set_size",
			Help:    "Aggregated requirement set size per data domain.",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
		[]string{"domain"},
	)

	// RenderTotal counts dashboard render passes by result.
	RenderTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_render_total",
			Help: "Dashboard render passes, labeled by result.",
		},
		[]string{"result"},
	)
)

// MustRegisterMetrics registers all collectors with the default registry.
// Call once at startup.
func MustRegisterMetrics() {
	prometheus.MustRegister(
		ProviderFetchTotal,
		ProviderFetchDuration,
		ProviderCacheHits,
		RequirementSetSize,
		RenderTotal,
	)
}
