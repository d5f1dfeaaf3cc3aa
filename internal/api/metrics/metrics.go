// Package metrics defines and registers all custom Prometheus metrics for
// the user-management API. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "usermgmt"

// AuthDecisionsTotal counts authorization-policy outcomes per request.
// Label:
//   - result: "admitted", "public", "unauthenticated", or "forbidden"
var AuthDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_decisions_total",
		Help:      "Total number of authorization decisions, by outcome.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "created" or "conflict"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// UserMutationsTotal counts successful user mutations.
// Label:
//   - op: "create", "update", or "delete"
var UserMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_mutations_total",
		Help:      "Total number of successful user record mutations, by operation.",
	},
	[]string{"op"},
)

// PageCacheTotal counts listing-cache lookups.
// Label:
//   - result: "hit" or "miss"
var PageCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "page_cache_total",
		Help:      "Total number of listing cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)
