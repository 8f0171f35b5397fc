package stellarrec

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    matchCounter    prometheus.Counter
//	    matchHistogram  prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordMatch(results int, duration time.Duration, err error) {
//	    p.matchCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordIndexBuild is called after each catalog index build.
	// candidates is the catalog size, duration is the time taken,
	// err is nil if successful.
	RecordIndexBuild(candidates int, duration time.Duration, err error)

	// RecordMatch is called after each match request.
	// results is the number of matches returned, duration is the time
	// taken, err is nil if successful.
	RecordMatch(results int, duration time.Duration, err error)

	// RecordSimilar is called after each similarity search.
	RecordSimilar(results int, duration time.Duration, err error)

	// RecordResourceLoad is called after each resource load attempt.
	RecordResourceLoad(duration time.Duration, err error)

	// RecordEviction is called after each idle-eviction sweep that
	// removed at least one resource.
	RecordEviction(evicted int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordIndexBuild(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordMatch(int, time.Duration, error)      {}
func (NoopMetricsCollector) RecordSimilar(int, time.Duration, error)    {}
func (NoopMetricsCollector) RecordResourceLoad(time.Duration, error)    {}
func (NoopMetricsCollector) RecordEviction(int)                         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
// All fields use atomic operations and are safe for concurrent access.
type BasicMetricsCollector struct {
	IndexBuildCount    atomic.Int64
	IndexBuildErrors   atomic.Int64
	MatchCount         atomic.Int64
	MatchErrors        atomic.Int64
	MatchTotalNanos    atomic.Int64
	SimilarCount       atomic.Int64
	SimilarErrors      atomic.Int64
	SimilarTotalNanos  atomic.Int64
	ResourceLoadCount  atomic.Int64
	ResourceLoadErrors atomic.Int64
	EvictionSweeps     atomic.Int64
	EvictedResources   atomic.Int64
}

// RecordIndexBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIndexBuild(candidates int, duration time.Duration, err error) {
	b.IndexBuildCount.Add(1)
	if err != nil {
		b.IndexBuildErrors.Add(1)
	}
}

// RecordMatch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMatch(results int, duration time.Duration, err error) {
	b.MatchCount.Add(1)
	b.MatchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.MatchErrors.Add(1)
	}
}

// RecordSimilar implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSimilar(results int, duration time.Duration, err error) {
	b.SimilarCount.Add(1)
	b.SimilarTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SimilarErrors.Add(1)
	}
}

// RecordResourceLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordResourceLoad(duration time.Duration, err error) {
	b.ResourceLoadCount.Add(1)
	if err != nil {
		b.ResourceLoadErrors.Add(1)
	}
}

// RecordEviction implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEviction(evicted int) {
	b.EvictionSweeps.Add(1)
	b.EvictedResources.Add(int64(evicted))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		IndexBuildCount:    b.IndexBuildCount.Load(),
		IndexBuildErrors:   b.IndexBuildErrors.Load(),
		MatchCount:         b.MatchCount.Load(),
		MatchErrors:        b.MatchErrors.Load(),
		MatchAvgNanos:      avgNanos(&b.MatchTotalNanos, &b.MatchCount),
		SimilarCount:       b.SimilarCount.Load(),
		SimilarErrors:      b.SimilarErrors.Load(),
		SimilarAvgNanos:    avgNanos(&b.SimilarTotalNanos, &b.SimilarCount),
		ResourceLoadCount:  b.ResourceLoadCount.Load(),
		ResourceLoadErrors: b.ResourceLoadErrors.Load(),
		EvictionSweeps:     b.EvictionSweeps.Load(),
		EvictedResources:   b.EvictedResources.Load(),
	}
}

func avgNanos(total, count *atomic.Int64) int64 {
	c := count.Load()
	if c == 0 {
		return 0
	}
	return total.Load() / c
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	IndexBuildCount    int64
	IndexBuildErrors   int64
	MatchCount         int64
	MatchErrors        int64
	MatchAvgNanos      int64
	SimilarCount       int64
	SimilarErrors      int64
	SimilarAvgNanos    int64
	ResourceLoadCount  int64
	ResourceLoadErrors int64
	EvictionSweeps     int64
	EvictedResources   int64
}
