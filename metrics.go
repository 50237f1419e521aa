package clustereval

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the prom
// package ships a Prometheus implementation.
type MetricsCollector interface {
	// RecordFit is called after each model fit.
	RecordFit(algorithm string, k int, duration time.Duration, err error)

	// RecordEvaluate is called after the scores of a run were computed.
	// scores is nil when err is set.
	RecordEvaluate(algorithm string, scores map[string]float64, duration time.Duration, err error)

	// RecordSweep is called after a silhouette or elbow sweep.
	RecordSweep(kind string, candidates int, duration time.Duration, err error)

	// RecordArchive is called after a report was saved or loaded.
	RecordArchive(op string, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordFit(string, int, time.Duration, error)                     {}
func (NoopMetricsCollector) RecordEvaluate(string, map[string]float64, time.Duration, error) {}
func (NoopMetricsCollector) RecordSweep(string, int, time.Duration, error)                   {}
func (NoopMetricsCollector) RecordArchive(string, time.Duration, error)                      {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	FitCount        atomic.Int64
	FitErrors       atomic.Int64
	FitTotalNanos   atomic.Int64
	EvaluateCount   atomic.Int64
	EvaluateErrors  atomic.Int64
	SweepCount      atomic.Int64
	SweepCandidates atomic.Int64
	SweepErrors     atomic.Int64
	SweepTotalNanos atomic.Int64
	ArchiveCount    atomic.Int64
	ArchiveErrors   atomic.Int64
}

// RecordFit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFit(_ string, _ int, duration time.Duration, err error) {
	b.FitCount.Add(1)
	b.FitTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.FitErrors.Add(1)
	}
}

// RecordEvaluate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEvaluate(_ string, _ map[string]float64, _ time.Duration, err error) {
	b.EvaluateCount.Add(1)
	if err != nil {
		b.EvaluateErrors.Add(1)
	}
}

// RecordSweep implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSweep(_ string, candidates int, duration time.Duration, err error) {
	b.SweepCount.Add(1)
	b.SweepCandidates.Add(int64(candidates))
	b.SweepTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SweepErrors.Add(1)
	}
}

// RecordArchive implements MetricsCollector.
func (b *BasicMetricsCollector) RecordArchive(_ string, _ time.Duration, err error) {
	b.ArchiveCount.Add(1)
	if err != nil {
		b.ArchiveErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		FitCount:        b.FitCount.Load(),
		FitErrors:       b.FitErrors.Load(),
		FitAvgNanos:     avg(b.FitTotalNanos.Load(), b.FitCount.Load()),
		EvaluateCount:   b.EvaluateCount.Load(),
		EvaluateErrors:  b.EvaluateErrors.Load(),
		SweepCount:      b.SweepCount.Load(),
		SweepCandidates: b.SweepCandidates.Load(),
		SweepErrors:     b.SweepErrors.Load(),
		SweepAvgNanos:   avg(b.SweepTotalNanos.Load(), b.SweepCount.Load()),
		ArchiveCount:    b.ArchiveCount.Load(),
		ArchiveErrors:   b.ArchiveErrors.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	FitCount        int64
	FitErrors       int64
	FitAvgNanos     int64
	EvaluateCount   int64
	EvaluateErrors  int64
	SweepCount      int64
	SweepCandidates int64
	SweepErrors     int64
	SweepAvgNanos   int64
	ArchiveCount    int64
	ArchiveErrors   int64
}
