package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Core request/hit/miss counters
	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gql_cache_requests_total",
			Help: "Total number of cache lookups",
		},
		[]string{"role"},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gql_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"role"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gql_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"role"},
	)

	CacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gql_cache_evictions_total",
			Help: "Total number of entries evicted at capacity",
		},
	)

	CacheInvalidated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gql_cache_invalidated_entries_total",
			Help: "Total number of entries removed by invalidation",
		},
	)

	// Get operation latency only
	CacheOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gql_cache_operation_duration_seconds",
			Help:    "Duration of cache get operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// Utilization gauges
	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gql_cache_entries",
			Help: "Current number of held cache entries",
		},
	)

	CacheUtilization = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gql_cache_utilization_percent",
			Help: "Held entries as a percentage of max entries",
		},
	)
)

// RecordCacheRequest records a cache lookup
func RecordCacheRequest(role string) {
	CacheRequests.WithLabelValues(role).Inc()
}

// RecordCacheHit records a cache hit
func RecordCacheHit(role string) {
	CacheHits.WithLabelValues(role).Inc()
}

// RecordCacheMiss records a cache miss
func RecordCacheMiss(role string) {
	CacheMisses.WithLabelValues(role).Inc()
}

// RecordEviction records a capacity eviction
func RecordEviction() {
	CacheEvictions.Inc()
}

// RecordInvalidated records entries removed by an invalidation call
func RecordInvalidated(count int) {
	CacheInvalidated.Add(float64(count))
}

// UpdateUtilization updates the size and utilization gauges
func UpdateUtilization(size int, utilizationPercent float64) {
	CacheSize.Set(float64(size))
	CacheUtilization.Set(utilizationPercent)
}

// TimeCacheGetOperation returns a timer function for measuring cache get operation duration
func TimeCacheGetOperation() func() {
	timer := prometheus.NewTimer(CacheOperationDuration.WithLabelValues("get"))
	return func() {
		timer.ObserveDuration()
	}
}
