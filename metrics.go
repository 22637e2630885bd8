package linkcore

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus; see the metrics subpackage for a ready-made implementation.
type MetricsCollector interface {
	// RecordMatch is called after each top-k matching operation.
	RecordMatch(k, results int, duration time.Duration, err error)

	// RecordAddEdge is called after each grouping edge is processed.
	// merged reports whether processing this edge triggered a group merge.
	RecordAddEdge(merged bool, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordMatch(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordAddEdge(bool, time.Duration, error)   {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	MatchCount      atomic.Int64
	MatchErrors     atomic.Int64
	MatchTotalNanos atomic.Int64
	AddEdgeCount    atomic.Int64
	AddEdgeErrors   atomic.Int64
	MergeCount      atomic.Int64
}

// RecordMatch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMatch(k, results int, duration time.Duration, err error) {
	b.MatchCount.Add(1)
	b.MatchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.MatchErrors.Add(1)
	}
}

// RecordAddEdge implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAddEdge(merged bool, duration time.Duration, err error) {
	b.AddEdgeCount.Add(1)
	if merged {
		b.MergeCount.Add(1)
	}
	if err != nil {
		b.AddEdgeErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		MatchCount:    b.MatchCount.Load(),
		MatchErrors:   b.MatchErrors.Load(),
		MatchAvgNanos: b.avgMatchNanos(),
		AddEdgeCount:  b.AddEdgeCount.Load(),
		AddEdgeErrors: b.AddEdgeErrors.Load(),
		MergeCount:    b.MergeCount.Load(),
	}
}

func (b *BasicMetricsCollector) avgMatchNanos() int64 {
	count := b.MatchCount.Load()
	if count == 0 {
		return 0
	}
	return b.MatchTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	MatchCount    int64
	MatchErrors   int64
	MatchAvgNanos int64
	AddEdgeCount  int64
	AddEdgeErrors int64
	MergeCount    int64
}
