package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics.
var (
	// APIRequestsTotal counts handled requests.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adminbff_api_requests_total",
			Help: "Total handled API requests.",
		},
		[]string{"method", "path", "status"},
	)

	// APIRequestDuration observes request latency in seconds.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "adminbff_api_request_duration_seconds",
			Help:    "API request latency distribution.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Authorization metrics.
var (
	// AuthzRejectionsTotal counts requests short-circuited by the
	// authorization middleware, labeled by taxonomy kind.
	AuthzRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adminbff_authz_rejections_total",
			Help: "Requests rejected by the authorization layer.",
		},
		[]string{"kind"},
	)

	// BackendRequestsTotal counts proxied backend calls by outcome.
	BackendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adminbff_backend_requests_total",
			Help: "Outbound backend requests by outcome.",
		},
		[]string{"outcome"},
	)
)
