// Package metrics defines and registers all custom Prometheus metrics for the
// admin portal. It is the single source of truth for metric names, labels, and
// help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_input", "invalid_credentials", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionExpirationsTotal counts sessions destroyed because their inactivity
// window elapsed (as opposed to explicit logout).
var SessionExpirationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_expirations_total",
		Help:      "Total number of sessions destroyed by inactivity expiry.",
	},
)

// ScheduleQueriesTotal counts dependent-query requests by outcome.
// Label:
//   - result: "ok", "empty", or "error"
var ScheduleQueriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "schedule_queries_total",
		Help:      "Total number of day → schedule queries, by result.",
	},
	[]string{"result"},
)

// RateLimitedTotal counts requests rejected by the public rate limiter.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of public requests rejected by the rate limiter.",
	},
)

// RegisterActiveSessions exposes a gauge backed by the session store's live
// count. Call once at startup; only meaningful for the in-process backend.
func RegisterActiveSessions(count func() float64) {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Current number of live sessions in the store.",
	}, count)
}
