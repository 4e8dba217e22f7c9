package stargo

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
//	    planCounter   prometheus.Counter
//	    planHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordPlan(hops int, duration time.Duration, err error) {
//	    p.planCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordSnapshotLoad is called after a snapshot load.
	// count is the number of systems loaded, err is nil if successful.
	RecordSnapshotLoad(count int, duration time.Duration, err error)

	// RecordIndexBuild is called after spatial index construction.
	RecordIndexBuild(duration time.Duration)

	// RecordPlan is called after each plan operation.
	// hops is the hop count of the plotted route (0 on failure),
	// duration is the time taken, err is nil if successful.
	RecordPlan(hops int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSnapshotLoad(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordIndexBuild(time.Duration)               {}
func (NoopMetricsCollector) RecordPlan(int, time.Duration, error)         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	LoadCount      atomic.Int64
	LoadErrors     atomic.Int64
	LoadedSystems  atomic.Int64
	IndexBuilds    atomic.Int64
	PlanCount      atomic.Int64
	PlanErrors     atomic.Int64
	PlanTotalHops  atomic.Int64
	PlanTotalNanos atomic.Int64
}

// RecordSnapshotLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshotLoad(count int, duration time.Duration, err error) {
	b.LoadCount.Add(1)
	if err != nil {
		b.LoadErrors.Add(1)
		return
	}
	b.LoadedSystems.Add(int64(count))
}

// RecordIndexBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIndexBuild(duration time.Duration) {
	b.IndexBuilds.Add(1)
}

// RecordPlan implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPlan(hops int, duration time.Duration, err error) {
	b.PlanCount.Add(1)
	b.PlanTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.PlanErrors.Add(1)
		return
	}
	b.PlanTotalHops.Add(int64(hops))
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector counters.
type BasicMetricsStats struct {
	LoadCount     int64
	LoadErrors    int64
	LoadedSystems int64
	IndexBuilds   int64
	PlanCount     int64
	PlanErrors    int64
	PlanAvgHops   float64
	PlanAvgNanos  int64
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	stats := BasicMetricsStats{
		LoadCount:     b.LoadCount.Load(),
		LoadErrors:    b.LoadErrors.Load(),
		LoadedSystems: b.LoadedSystems.Load(),
		IndexBuilds:   b.IndexBuilds.Load(),
		PlanCount:     b.PlanCount.Load(),
		PlanErrors:    b.PlanErrors.Load(),
	}

	if ok := stats.PlanCount - stats.PlanErrors; ok > 0 {
		stats.PlanAvgHops = float64(b.PlanTotalHops.Load()) / float64(ok)
	}
	if stats.PlanCount > 0 {
		stats.PlanAvgNanos = b.PlanTotalNanos.Load() / stats.PlanCount
	}

	return stats
}
