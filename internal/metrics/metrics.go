// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matjibmap_http_requests_total",
			Help: "Total HTTP requests by method, route and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "matjibmap_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Recommendation outcomes: success, validation_error, generation_error, superseded
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matjibmap_recommendations_total",
			Help: "Recommendation requests by outcome",
		},
		[]string{"outcome"},
	)

	// Jobs
	JobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matjibmap_jobs_total",
			Help: "Background jobs reaching a terminal status, by type and status",
		},
		[]string{"type", "status"},
	)

	JobsRunning = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "matjibmap_jobs_running",
			Help: "Background jobs currently holding a worker slot",
		},
	)

	// Sessions and map
	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "matjibmap_sessions_active",
			Help: "Sessions currently held in memory",
		},
	)

	MapMarkersLive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "matjibmap_map_markers_live",
			Help: "Markers currently attached to map widgets across all sessions",
		},
	)

	MapLoadFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matjibmap_map_load_failures_total",
			Help: "Map widget load attempts that failed",
		},
	)
)
