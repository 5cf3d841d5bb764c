package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UseCaseRequests counts orchestrator invocations by use case and outcome.
	UseCaseRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "usecase_requests_total",
			Help: "Total number of use case invocations.",
		},
		[]string{"use_case", "outcome"},
	)

	// UseCaseDuration tracks use case execution latency.
	UseCaseDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "usecase_duration_seconds",
			Help:    "Duration of use case execution in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"use_case"},
	)

	// EventPublishFailures counts dropped event publications. Notifications
	// are best-effort; this is the only trace a lost one leaves.
	EventPublishFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_publish_failed_total",
			Help: "Count of event publish failures.",
		},
		[]string{"event"},
	)

	// HTTPRequests counts inbound requests by route template, keeping labels
	// low-cardinality.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks inbound request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// ProviderRequestDuration tracks external payment provider latency.
	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "external_request_duration_seconds",
			Help:    "Duration of external provider requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"peer", "outcome"},
	)
)
