package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "promptglot",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "promptglot",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "route"},
	)

	ProviderCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "promptglot",
			Subsystem: "provider",
			Name:      "calls_total",
			Help:      "Total outbound provider calls",
		},
		[]string{"provider", "operation", "outcome"},
	)

	ProviderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "promptglot",
			Subsystem: "provider",
			Name:      "call_duration_seconds",
			Help:      "Outbound provider call duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 20, 40, 60},
		},
		[]string{"provider", "operation"},
	)

	EditRoutesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "promptglot",
			Subsystem: "edit",
			Name:      "routes_total",
			Help:      "Edit requests by selected provider endpoint",
		},
		[]string{"route"},
	)

	IntentFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "promptglot",
			Subsystem: "edit",
			Name:      "intent_fallbacks_total",
			Help:      "Inpaint requests that continued with the original prompt",
		},
		[]string{"reason"},
	)
)

// RecordRequest records an HTTP request.
func RecordRequest(method, route, status string, elapsed time.Duration) {
	RequestsTotal.WithLabelValues(method, route, status).Inc()
	RequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordProviderCall records one outbound call. outcome is "success" or an
// error code.
func RecordProviderCall(provider, operation, outcome string, elapsed time.Duration) {
	ProviderCallsTotal.WithLabelValues(provider, operation, outcome).Inc()
	ProviderDuration.WithLabelValues(provider, operation).Observe(elapsed.Seconds())
}

// RecordEditRoute records the endpoint the router picked.
func RecordEditRoute(route string) {
	EditRoutesTotal.WithLabelValues(route).Inc()
}

// RecordIntentFallback records a degraded intent resolution.
func RecordIntentFallback(reason string) {
	IntentFallbacksTotal.WithLabelValues(reason).Inc()
}
