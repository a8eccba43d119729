// Package metrics defines and registers all custom Prometheus metrics for the
// Coda Bean storefront. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on import via
// promauto and exposed on /metrics next to the echoprometheus HTTP metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Labels:
//   - result: "success", "rejected" or "invalid"
//   - role: the resolved role on success, empty otherwise
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result and role.",
	},
	[]string{"result", "role"},
)

// LiveVisitors tracks the number of visitors held in process memory.
var LiveVisitors = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "live_visitors",
		Help:      "Current number of visitors with in-memory state.",
	},
)

// ── Cart and order metrics ────────────────────────────────────────────────────

// CartMutationsTotal counts cart changes.
// Labels:
//   - op: "add", "update", "remove" or "clear"
//   - result: "ok" or "error"
var CartMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_mutations_total",
		Help:      "Total number of cart mutations, by operation and result.",
	},
	[]string{"op", "result"},
)

// OrdersTotal counts checkout submissions.
// Label:
//   - result: "confirmed", "invalid", "empty_cart", "in_progress" or "failed"
var OrdersTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_total",
		Help:      "Total number of checkout submissions, by result.",
	},
	[]string{"result"},
)

// OrderNotificationsTotal counts order-confirmed notifications handed to the broker.
// Label:
//   - result: "published", "failed" or "dropped"
var OrderNotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_notifications_total",
		Help:      "Total number of order-confirmed notifications, by delivery result.",
	},
	[]string{"result"},
)

// NotificationQueueDepth tracks the number of notifications waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Admin metrics ─────────────────────────────────────────────────────────────

// AdminMutationsTotal counts catalog edits from the admin dashboard.
// Labels:
//   - kind: "product" or "event"
//   - op: "save" or "delete"
//   - result: "ok" or "error"
var AdminMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_mutations_total",
		Help:      "Total number of admin catalog mutations, by kind, operation and result.",
	},
	[]string{"kind", "op", "result"},
)

// ── Backend metrics ───────────────────────────────────────────────────────────

// BackendRequestDuration measures calls to the café backend.
// Labels:
//   - operation: client method name (e.g. "list_products")
//   - status: HTTP status code, or "error" when no response was received
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of requests to the café backend.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"operation", "status"},
)
