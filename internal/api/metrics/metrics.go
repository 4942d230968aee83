// Package metrics defines the custom Prometheus metrics of the store API.
// HTTP request metrics come from echoprometheus; this package only holds
// business counters. Metrics are registered with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "store"

// ── User metrics ──────────────────────────────────────────────────────────────

// UsersRegisteredTotal counts successful registrations.
// Label:
//   - role: the role actually assigned (ADMIN, MANAGER, USER)
var UsersRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of user accounts registered, by assigned role.",
	},
	[]string{"role"},
)

// UsersDeletedTotal counts accounts actually removed.
var UsersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_deleted_total",
		Help:      "Total number of user accounts deleted.",
	},
)

// ── Store metrics ─────────────────────────────────────────────────────────────

// EntitiesProvisionedTotal counts stores, products and customers created.
// Label:
//   - kind: "store", "product" or "customer"
var EntitiesProvisionedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entities_provisioned_total",
		Help:      "Total number of stores, products and customers provisioned.",
	},
	[]string{"kind"},
)

// AccessDeniedTotal counts requests rejected by a role check.
// Label:
//   - operation: the route or service operation that refused the caller
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of operations refused because of the caller's role.",
	},
	[]string{"operation"},
)
