// Package metrics defines and registers all custom Prometheus metrics for the
// LMS backend. It is the single source of truth for metric names, labels, and
// help strings.
//
// All collectors are registered with the default registry at package init via
// promauto; the /metrics endpoint is mounted by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lms"

// KeyRedemptionsTotal counts access-key redemption attempts.
// Label:
//   - result: "success", "not_found", "inactive", "expired",
//     "usage_exceeded", "grant_failed", or "error"
var KeyRedemptionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "key_redemptions_total",
		Help:      "Total number of access-key redemption attempts, by outcome.",
	},
	[]string{"result"},
)

// UsersRegisteredTotal counts successful registrations.
// Label:
//   - role: the role assigned to the new account
var UsersRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of user accounts created.",
	},
	[]string{"role"},
)

// CoursesCreatedTotal counts catalog entries created.
// Label:
//   - level: the course's difficulty level
var CoursesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "courses_created_total",
		Help:      "Total number of courses added to the catalog, by level.",
	},
	[]string{"level"},
)

// CatalogCacheTotal counts cache lookups for the public course list.
// Label:
//   - result: "hit" or "miss"
var CatalogCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_cache_total",
		Help:      "Total number of course catalog cache lookups, by result.",
	},
	[]string{"result"},
)

// ActivityQueueDepth tracks events waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity events pending per dispatcher worker.",
	},
	[]string{"worker_id"},
)
