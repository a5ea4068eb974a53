package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Hits tracks cache hits by region
	Hits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"region"},
	)

	// Misses tracks cache misses by region
	Misses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"region"},
	)

	// Errors tracks cache operation errors
	Errors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_cache_errors_total",
			Help: "Total number of cache operation errors",
		},
		[]string{"operation"}, // "get", "set", "delete"
	)
)
