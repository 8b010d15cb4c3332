// Package metrics defines the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts handled HTTP requests by status code.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "initicon_http_requests_total",
		Help: "Handled HTTP requests by status code.",
	}, []string{"code"})

	// CacheLookups counts avatar cache lookups by result.
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "initicon_cache_lookups_total",
		Help: "Avatar cache lookups by result (hit or miss).",
	}, []string{"result"})

	// RenderDuration observes how long a single avatar render takes,
	// including font lookup and (for PNG) rasterization.
	RenderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "initicon_render_duration_seconds",
		Help:    "Avatar render latency in seconds.",
		Buckets: prometheus.DefBuckets,
	})
)
