// Package metrics defines all custom Prometheus metrics for the devlink
// API. It is the single source of truth for metric names, labels, and
// help strings. Metrics register themselves with the default registry at
// package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "devlink"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "failure", or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// CredentialsRejectedTotal counts credentials rejected by the request
// guard. The reason label is the internal sub-reason that is never sent
// to the client.
// Label:
//   - reason: "missing", "malformed", "invalid", or "expired"
var CredentialsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "credentials_rejected_total",
		Help:      "Total number of rejected request credentials, by internal reason.",
	},
	[]string{"reason"},
)

// TokensIssuedTotal counts credentials issued on registration and login.
var TokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of signed credentials issued.",
	},
)

// ── Content metrics ───────────────────────────────────────────────────────────

// PostsCreatedTotal counts newly created posts.
var PostsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of posts created.",
	},
)

// PostMutationsTotal counts sub-item mutations on posts by action and
// outcome.
// Labels:
//   - action: "like", "unlike", "comment", "uncomment"
//   - result: "ok", "conflict", "not_found", "forbidden", "error"
var PostMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "post_mutations_total",
		Help:      "Total number of like/comment mutations, by action and result.",
	},
	[]string{"action", "result"},
)

// ── Activity pipeline metrics ─────────────────────────────────────────────────

// ActivityQueueDepth tracks the number of pending entries in each
// activity worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity entries pending in each worker channel.",
	},
	[]string{"worker_id"},
)

// ActivityWriteDuration measures how long persisting one activity entry
// takes.
// Label:
//   - result: "ok" or "error"
var ActivityWriteDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "activity_write_duration_seconds",
		Help:      "Duration of activity trail writes from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)
