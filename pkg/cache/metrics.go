package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks cache hits by layer (memory, redis)
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_cache_hits_total",
			Help: "Total number of response cache hits",
		},
		[]string{"layer"}, // "memory", "redis"
	)

	// CacheMisses tracks cache misses
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "blog_cache_misses_total",
			Help: "Total number of response cache misses",
		},
	)

	// CacheInvalidations tracks entries removed by pattern invalidation
	CacheInvalidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_cache_invalidations_total",
			Help: "Total number of cache entries removed by pattern invalidation",
		},
		[]string{"layer"},
	)

	// NotModifiedResponses tracks 304 responses served via ETag matches
	NotModifiedResponses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "blog_not_modified_total",
			Help: "Total number of 304 Not Modified responses served",
		},
	)

	// CacheErrors tracks cache operation errors
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_cache_errors_total",
			Help: "Total number of cache operation errors",
		},
		[]string{"operation"}, // "get", "set", "delete", "invalidate"
	)
)
