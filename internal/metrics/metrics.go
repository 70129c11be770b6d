// Package metrics exposes Prometheus counters for committed transactions.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersPlaced = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "boutique_orders_placed_total",
		Help: "Orders placed by customers, per boutique.",
	}, []string{"boutique"})

	OrderTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "boutique_order_transitions_total",
		Help: "Order status changes, per target status.",
	}, []string{"status"})

	SalesRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "boutique_sales_recorded_total",
		Help: "Point-of-sale transactions, per payment method.",
	}, []string{"payment_method"})

	SalesRevenue = promauto.NewCounter(prometheus.CounterOpts{
		Name: "boutique_sales_revenue_total",
		Help: "Sum of sale totals in currency units.",
	})

	LoyaltyPointsAwarded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "boutique_loyalty_points_awarded_total",
		Help: "Loyalty points credited by orders and sales.",
	})

	TransactionsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "boutique_transactions_rejected_total",
		Help: "Engine operations that failed, per operation and reason.",
	}, []string{"operation", "reason"})
)
