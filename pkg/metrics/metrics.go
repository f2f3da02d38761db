// Package metrics exposes prometheus instrumentation for the cache and the
// graph assembly pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits counts cache hits per operation key prefix.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "politigraph",
		Name:      "cache_hits_total",
		Help:      "Number of cache hits per operation.",
	}, []string{"operation"})

	// CacheMisses counts cache misses per operation key prefix.
	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "politigraph",
		Name:      "cache_misses_total",
		Help:      "Number of cache misses per operation.",
	}, []string{"operation"})

	// StoreRowsSkipped counts rows dropped because they failed to decode.
	StoreRowsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "politigraph",
		Name:      "store_rows_skipped_total",
		Help:      "Number of store rows skipped due to decode failures.",
	}, []string{"kind"})

	// SnapshotBuildSeconds observes full network snapshot build durations.
	SnapshotBuildSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "politigraph",
		Name:      "snapshot_build_seconds",
		Help:      "Duration of network snapshot builds.",
		Buckets:   prometheus.DefBuckets,
	})

	// ConnectionWarnings counts best-effort edge categories that failed.
	ConnectionWarnings = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "politigraph",
		Name:      "connection_warnings_total",
		Help:      "Number of edge categories degraded to empty results.",
	}, []string{"category"})
)
