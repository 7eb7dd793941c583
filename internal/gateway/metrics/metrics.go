// Package metrics defines and registers the Prometheus metrics for the
// marketplace client. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// RequestsTotal counts gateway operations by result.
// Labels:
//   - operation: the gateway operation name (e.g. "login", "foods")
//   - result: "success" or the failure category (e.g. "timeout")
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of gateway operations, by operation and result.",
	},
	[]string{"operation", "result"},
)

// RequestDuration measures how long a single gateway operation takes from
// request build to classification.
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_duration_seconds",
		Help:      "Duration of gateway operations end-to-end.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// AuthFailuresTotal counts 401 responses on authenticated operations, each
// of which invalidates the local session.
var AuthFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of authenticated operations rejected with 401.",
	},
)
