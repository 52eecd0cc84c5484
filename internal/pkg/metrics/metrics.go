// Package metrics provides Prometheus metrics for the Fundlane edge gateway.
// Scrapeable /metrics; runbooks and dashboards can rely on these names.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fundlane_edge"

var (
	// HTTPRequestTotal counts requests by method, category, status (RED: rate).
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by method, route category, and status.",
		},
		[]string{"method", "category", "status"},
	)

	// HTTPRequestDurationSeconds is request latency histogram (RED: duration).
	HTTPRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2.5, 10), // 1ms to ~9.3s
		},
		[]string{"method", "category"},
	)

	// AuthDecisionsTotal counts edge auth decisions by category and outcome.
	AuthDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_decisions_total",
			Help:      "Edge authorization decisions by route category and outcome.",
		},
		[]string{"category", "outcome"},
	)

	// AuthFailuresTotal counts rejected requests by reason (no_session, bad_role, bad_cron_secret).
	AuthFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_failures_total",
			Help:      "Authentication and authorization failures by reason.",
		},
		[]string{"reason"},
	)

	// RateLimitRejectionsTotal counts 429 responses.
	RateLimitRejectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limit_rejections_total",
			Help:      "Total number of requests rejected by the rate limiter.",
		},
	)

	// RateLimitStoreErrorsTotal counts store failures that triggered fail-open.
	RateLimitStoreErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limit_store_errors_total",
			Help:      "Rate-limit store errors; each one means a request was allowed fail-open.",
		},
	)

	// CSRFRejectionsTotal counts origin-mismatch 403s.
	CSRFRejectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "csrf_rejections_total",
			Help:      "Total number of requests rejected by the CSRF origin check.",
		},
	)

	// PanicsTotal counts panics caught at the entry point and converted to 500s.
	PanicsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "panics_recovered_total",
			Help:      "Panics recovered by the top-level handler.",
		},
	)
)
