// Package metrics defines and registers all custom Prometheus metrics of the
// shop portal. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "shopportal"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// LogoutsTotal counts user-initiated logouts.
// Label:
//   - server: outcome of the server-side logout call: "ok", "failed" or "skipped"
var LogoutsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of logouts, by outcome of the server-side call.",
	},
	[]string{"server"},
)

// ForcedLogoutsTotal counts sessions invalidated by a 401 response.
var ForcedLogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "forced_logouts_total",
		Help:      "Total number of sessions cleared after the backend rejected the token.",
	},
)

// ShopLookupsTotal counts the background shop lookups issued for shop owners.
// Label:
//   - result: "found", "not_found" or "error"
var ShopLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shop_lookups_total",
		Help:      "Total number of shop-owner shop lookups after login, by result.",
	},
	[]string{"result"},
)

// ── Navigation metrics ────────────────────────────────────────────────────────

// GuardDecisionsTotal counts route guard decisions.
// Labels:
//   - guard: "auth" or "role"
//   - outcome: "allow", "login", "change_password", "landing" or "unauthorized"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions, by guard and outcome.",
	},
	[]string{"guard", "outcome"},
)

// NotificationsTotal counts notifications shown to users.
// Label:
//   - level: "success", "info", "warning" or "error"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of user notifications, by level.",
	},
	[]string{"level"},
)

// ── Backend metrics ───────────────────────────────────────────────────────────

// BackendRequestsTotal counts outgoing backend requests.
// Labels:
//   - method: HTTP method
//   - status: HTTP status code, or "0" when no response arrived
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests sent to the REST backend.",
	},
	[]string{"method", "status"},
)

// BackendRequestDuration measures backend round trips.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of requests sent to the REST backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// ProductAssignmentsTotal counts bulk shop-product assignment items.
// Label:
//   - result: "succeeded" or "failed"
var ProductAssignmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_assignments_total",
		Help:      "Total number of products assigned to shops in bulk, by result.",
	},
	[]string{"result"},
)

// SessionEventsQueueDepth tracks pending audit events per dispatcher worker.
var SessionEventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "session_events_queue_depth",
		Help:      "Current number of session events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// SessionEventsDroppedTotal counts audit events dropped because a worker queue was full.
var SessionEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_events_dropped_total",
		Help:      "Total number of session events dropped on a full dispatcher queue.",
	},
)
