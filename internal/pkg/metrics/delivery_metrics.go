// Package metrics exposes Prometheus counters for the order lifecycle.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DeliveryMetrics counts order submissions and delivery-status transitions.
//
// Suppressed transitions are timer firings that found the order already in a
// terminal status and did nothing; tracking them separately makes the
// "Cancelled wins" guard observable.
type DeliveryMetrics struct {
	OrdersSubmitted       prometheus.Counter
	StatusTransitions     *prometheus.CounterVec
	SuppressedTransitions prometheus.Counter
}

// NewDeliveryMetrics registers the counters with the given registerer.
func NewDeliveryMetrics(reg prometheus.Registerer) *DeliveryMetrics {
	factory := promauto.With(reg)

	return &DeliveryMetrics{
		OrdersSubmitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "orderflow_orders_submitted_total",
			Help: "Total number of orders submitted from carts.",
		}),
		StatusTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "orderflow_status_transitions_total",
			Help: "Total number of applied delivery-status transitions.",
		}, []string{"status"}),
		SuppressedTransitions: factory.NewCounter(prometheus.CounterOpts{
			Name: "orderflow_status_transitions_suppressed_total",
			Help: "Total number of scheduled transitions suppressed by a terminal status.",
		}),
	}
}
