package clustereval

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/clustereval/cluster"
	"github.com/hupe1980/clustereval/metrics"
)

// Logger wraps slog.Logger with clustereval-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithAlgorithm adds an algorithm field to the logger.
func (l *Logger) WithAlgorithm(a cluster.Algorithm) *Logger {
	return &Logger{
		Logger: l.Logger.With("algorithm", a.String()),
	}
}

// WithK adds an n_clusters field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("n_clusters", k),
	}
}

// WithRunID tags every record with the evaluation run.
func (l *Logger) WithRunID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("run_id", id),
	}
}

// LogFit logs a fit.
func (l *Logger) LogFit(ctx context.Context, samples int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "fit failed",
			"samples", samples,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "fit completed",
			"samples", samples,
			"duration", duration,
		)
	}
}

// LogEvaluate logs the scores of an evaluation.
func (l *Logger) LogEvaluate(ctx context.Context, rec metrics.Record, err error) {
	if err != nil {
		l.ErrorContext(ctx, "evaluation failed",
			"error", err,
		)
		return
	}
	attrs := make([]any, 0, 2*len(rec))
	for _, key := range rec.Keys() {
		attrs = append(attrs, key, rec[key])
	}
	l.InfoContext(ctx, "evaluation completed", attrs...)
}

// LogSweep logs a silhouette or elbow sweep.
func (l *Logger) LogSweep(ctx context.Context, kind string, candidates int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "sweep failed",
			"kind", kind,
			"candidates", candidates,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "sweep completed",
			"kind", kind,
			"candidates", candidates,
			"duration", duration,
		)
	}
}

// LogArchive logs a report save.
func (l *Logger) LogArchive(ctx context.Context, blob string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "archive failed",
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "report archived",
			"blob", blob,
		)
	}
}
