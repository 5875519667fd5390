package shopify

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for admin API fetch operations.
var (
	shopRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_api_requests_total",
		Help: "Total admin API requests by HTTP status",
	}, []string{"status"})

	shopRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "shop_api_request_duration_seconds",
		Help:    "Admin API page fetch duration in seconds, including retries",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
	})

	shopRateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shop_api_rate_limited_total",
		Help: "Total 429 responses received from the admin API",
	})

	shopRetryExhaustedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shop_api_retry_exhausted_total",
		Help: "Total page fetches abandoned after exhausting rate-limit retries",
	})

	shopPagesDroppedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_api_pages_dropped_total",
		Help: "Total pages dropped without data by reason",
	}, []string{"reason"})
)
