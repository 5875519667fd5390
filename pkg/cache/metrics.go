package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for page cache operations.
var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shop_page_cache_hits_total",
		Help: "Total page cache hits",
	})

	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shop_page_cache_misses_total",
		Help: "Total page cache misses",
	})

	cacheErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_page_cache_errors_total",
		Help: "Total page cache operation errors by operation",
	}, []string{"operation"})
)
