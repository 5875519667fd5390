package report

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for order aggregation.
var (
	ordersIngestedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shop_orders_ingested_total",
		Help: "Total unique orders folded into the report collections",
	})

	ordersDuplicateTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shop_orders_duplicate_total",
		Help: "Total orders skipped because their id was already processed",
	})

	ordersSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shop_orders_skipped_total",
		Help: "Total orders skipped for missing customer information",
	})
)
