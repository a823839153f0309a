// ABOUTME: Prometheus collectors for gateway request and auth instrumentation
// ABOUTME: Registered via promauto on the default registry, served at /metrics

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_http_requests_total",
			Help: "Total HTTP requests by method, path, and status code",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gateway_http_active_requests",
			Help: "Number of HTTP requests currently in flight",
		},
	)

	authFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_auth_failures_total",
			Help: "Authentication failures by reason",
		},
		[]string{"reason"},
	)

	authzDeniedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_authz_denied_total",
			Help: "Authorization denials by reason",
		},
		[]string{"reason"},
	)

	loginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_login_attempts_total",
			Help: "Login attempts by outcome",
		},
		[]string{"outcome"},
	)
)

// RecordRequest records a completed HTTP request.
func RecordRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(start bool) {
	if start {
		activeRequests.Inc()
	} else {
		activeRequests.Dec()
	}
}

// RecordAuthFailure counts an authentication failure by reason label.
func RecordAuthFailure(reason string) {
	authFailuresTotal.WithLabelValues(reason).Inc()
}

// RecordAuthzDenied counts an authorization denial by reason label.
func RecordAuthzDenied(reason string) {
	authzDeniedTotal.WithLabelValues(reason).Inc()
}

// RecordLogin counts a login attempt outcome.
func RecordLogin(success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	loginAttemptsTotal.WithLabelValues(outcome).Inc()
}
