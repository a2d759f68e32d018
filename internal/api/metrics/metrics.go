// Package metrics defines and registers all custom Prometheus metrics for the
// dashboard gateway. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics self-register with the default Prometheus registry via promauto at
// package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dashboard"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts through the gateway.
// Label:
//   - result: "success", "invalid_claim" (unknown role or undecodable token),
//     or "upstream_error" (token endpoint rejected or unreachable)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// GateDecisionsTotal counts session-gate checks on protected routes.
// Labels:
//   - required_role: the role the route demands (owner/teacher/student/parent)
//   - result: "allow" or "redirect"
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of session gate decisions, by required role and result.",
	},
	[]string{"required_role", "result"},
)

// ── Upstream metrics ──────────────────────────────────────────────────────────

// UpstreamRequestsTotal counts calls to the platform API.
// Labels:
//   - resource: collection or "token"
//   - method: HTTP method
//   - status: numeric HTTP status, or "transport_error"
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests sent to the platform API.",
	},
	[]string{"resource", "method", "status"},
)

// UpstreamRequestDuration measures platform API round-trip time.
// Label:
//   - resource: collection or "token"
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of platform API round trips.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"resource"},
)

// ── Cache and audit metrics ───────────────────────────────────────────────────

// LookupCacheTotal counts reference-lookup cache reads.
// Label:
//   - result: "hit" or "miss"
var LookupCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lookup_cache_total",
		Help:      "Total number of lookup cache reads, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// AuditQueueDepth tracks events waiting in each audit dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
