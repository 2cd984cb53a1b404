// Package metrics defines all custom Prometheus metrics for the pharmacy
// POS API. It is the single source of truth for metric names, labels, and
// help strings. Metrics register themselves with the default registry via
// promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "farmapp"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// AuthRejectionsTotal counts requests the authorization gate turned away.
// Label:
//   - reason: "missing_credentials", "invalid_token", or "forbidden"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by the authorization gate.",
	},
	[]string{"reason"},
)

// SalesRecordedTotal counts recorded sales.
// Label:
//   - payment_method: "cash", "credit_card", "debit_card", or "transfer"
var SalesRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sales_recorded_total",
		Help:      "Total number of sales recorded, by payment method.",
	},
	[]string{"payment_method"},
)
