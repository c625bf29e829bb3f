// Package metrics defines and registers all custom Prometheus metrics for the
// asset-admin API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register themselves with the default registry via
// promauto at init time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "assetadmin"

// ── Authentication metrics ────────────────────────────────────────────────────

// SignInAttemptsTotal counts sign-in attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", "rate_limited"
var SignInAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signin_attempts_total",
		Help:      "Total number of sign-in attempts, labelled by outcome.",
	},
	[]string{"result"},
)

// LockoutsTotal counts logins that crossed the consecutive-failure threshold.
var LockoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lockouts_total",
		Help:      "Total number of login lockouts triggered by consecutive failures.",
	},
)

// TokenValidationsTotal counts access-token validations by outcome.
// Label:
//   - result: "ok", "invalid"
var TokenValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_validations_total",
		Help:      "Total number of access token validations, labelled by outcome.",
	},
	[]string{"result"},
)

// ── Entity metrics ────────────────────────────────────────────────────────────

// EntityOperationsTotal counts successful entity mutations.
// Labels:
//   - kind: resource kind ("users", "objects", "equipments", ...)
//   - verb: "create", "update", "delete"
var EntityOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entity_operations_total",
		Help:      "Total number of successful entity mutations, by kind and verb.",
	},
	[]string{"kind", "verb"},
)

// BackupRunsTotal counts background backup runs by outcome.
// Label:
//   - result: "ok", "error"
var BackupRunsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backup_runs_total",
		Help:      "Total number of background backup runs, labelled by outcome.",
	},
	[]string{"result"},
)
