package clustereval

import (
	"log/slog"

	"github.com/hupe1980/clustereval/archive"
)

type options struct {
	experiment       string
	metricsCollector MetricsCollector
	logger           *Logger
	archive          *archive.Archive
	maxFits          int64
	memoryLimit      int64
	workers          int
}

// Option configures an Evaluator.
type Option func(*options)

// WithExperiment names the experiment recorded in archived reports.
func WithExperiment(name string) Option {
	return func(o *options) {
		o.experiment = name
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &clustereval.BasicMetricsCollector{}
//	ev := clustereval.New(clustereval.WithMetricsCollector(metrics))
//	// ... use ev ...
//	stats := metrics.GetStats()
//	fmt.Printf("Fits: %d, Avg latency: %dns\n", stats.FitCount, stats.FitAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := clustereval.NewJSONLogger(slog.LevelInfo)
//	ev := clustereval.New(clustereval.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithArchive saves a report after every successful Evaluate.
func WithArchive(a *archive.Archive) Option {
	return func(o *options) {
		o.archive = a
	}
}

// WithLimits bounds the fits running at once and the memory reserved for
// agglomerative distance matrices. Zero fits means GOMAXPROCS, zero memory
// means unlimited.
func WithLimits(maxConcurrentFits int, memoryLimitBytes int64) Option {
	return func(o *options) {
		o.maxFits = int64(maxConcurrentFits)
		o.memoryLimit = memoryLimitBytes
	}
}

// WithWorkers bounds the concurrent fits of a sweep. Zero means one per
// candidate.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		experiment:       "default",
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
