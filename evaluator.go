package clustereval

import (
	"context"
	"runtime"
	"time"

	"github.com/hupe1980/clustereval/analysis"
	"github.com/hupe1980/clustereval/archive"
	"github.com/hupe1980/clustereval/cluster"
	"github.com/hupe1980/clustereval/distance"
	"github.com/hupe1980/clustereval/internal/resource"
	"github.com/hupe1980/clustereval/metrics"
)

// Sweep kinds passed to MetricsCollector.RecordSweep.
const (
	SweepSilhouette = "silhouette"
	SweepElbow      = "elbow"
)

// Result is the outcome of Evaluate.
type Result struct {
	// Report holds the run ID, configuration and scores.
	Report *archive.Report

	// Labels are the raw cluster labels of the fitted model.
	Labels []int

	// Metric is the distance paired with the algorithm by the selector.
	Metric distance.Metric

	// Blob is the archive blob name, empty when no archive is configured.
	Blob string
}

// Evaluator fits clusterers and scores them against ground truth.
// It is safe for concurrent use.
type Evaluator struct {
	opts options
	rc   *resource.Controller
}

// New creates an Evaluator.
func New(optFns ...Option) *Evaluator {
	o := applyOptions(optFns)
	maxFits := o.maxFits
	if maxFits <= 0 {
		maxFits = int64(runtime.GOMAXPROCS(0))
	}
	return &Evaluator{
		opts: o,
		rc: resource.NewController(resource.Config{
			MaxConcurrentFits: maxFits,
			MemoryLimitBytes:  o.memoryLimit,
		}),
	}
}

// Archive returns the configured archive, or nil.
func (e *Evaluator) Archive() *archive.Archive {
	return e.opts.archive
}

// Fit selects and fits a clusterer for cfg.
func (e *Evaluator) Fit(ctx context.Context, X [][]float64, cfg cluster.Config) (cluster.Clusterer, distance.Metric, error) {
	logger := e.opts.logger.WithAlgorithm(cfg.Algorithm).WithK(cfg.NClusters)

	model, metric, err := cluster.Select(cfg)
	if err != nil {
		return nil, 0, translateError(err)
	}

	var memBytes int64
	if cfg.Algorithm == cluster.Agglomerative {
		memBytes = cluster.MatrixBytes(len(X))
	}
	lease, err := e.rc.AcquireFit(ctx, memBytes)
	if err != nil {
		return nil, 0, err
	}
	defer lease.Release()

	start := time.Now()
	err = model.Fit(ctx, X)
	duration := time.Since(start)

	e.opts.metricsCollector.RecordFit(cfg.Algorithm.String(), cfg.NClusters, duration, err)
	logger.LogFit(ctx, len(X), duration, err)
	if err != nil {
		return nil, 0, translateError(err)
	}
	return model, metric, nil
}

// Evaluate fits cfg on X and scores the labels against yTrue. With an
// archive configured, the report is saved before Evaluate returns.
func (e *Evaluator) Evaluate(ctx context.Context, X [][]float64, yTrue []int, cfg cluster.Config) (*Result, error) {
	model, metric, err := e.Fit(ctx, X, cfg)
	if err != nil {
		return nil, err
	}

	report := archive.NewReport(e.opts.experiment, cfg, nil)
	logger := e.opts.logger.WithRunID(report.ID).WithAlgorithm(cfg.Algorithm).WithK(cfg.NClusters)

	labels := model.Labels()
	start := time.Now()
	rec, err := metrics.Compute(yTrue, labels, X,
		metrics.WithAlgorithm(cfg.Algorithm),
		metrics.WithLogger(logger.Logger),
	)
	e.opts.metricsCollector.RecordEvaluate(cfg.Algorithm.String(), rec, time.Since(start), err)
	logger.LogEvaluate(ctx, rec, err)
	if err != nil {
		return nil, translateError(err)
	}
	report.Metrics = rec

	res := &Result{Report: report, Labels: labels, Metric: metric}
	if e.opts.archive == nil {
		return res, nil
	}

	start = time.Now()
	res.Blob, err = e.opts.archive.Save(ctx, report)
	e.opts.metricsCollector.RecordArchive("save", time.Since(start), err)
	logger.LogArchive(ctx, res.Blob, err)
	if err != nil {
		return nil, translateError(err)
	}
	return res, nil
}

// Score computes the metrics record for labels that were produced elsewhere.
func (e *Evaluator) Score(ctx context.Context, yTrue, yPred []int, X [][]float64, algo cluster.Algorithm) (metrics.Record, error) {
	logger := e.opts.logger.WithAlgorithm(algo)

	start := time.Now()
	rec, err := metrics.Compute(yTrue, yPred, X,
		metrics.WithAlgorithm(algo),
		metrics.WithLogger(logger.Logger),
	)
	e.opts.metricsCollector.RecordEvaluate(algo.String(), rec, time.Since(start), err)
	logger.LogEvaluate(ctx, rec, err)
	return rec, translateError(err)
}

func (e *Evaluator) sweepOptions() []analysis.Option {
	return []analysis.Option{
		analysis.WithWorkers(e.opts.workers),
		analysis.WithResourceController(e.rc),
		analysis.WithLogger(e.opts.logger.Logger),
	}
}

// Silhouette runs a silhouette sweep over ks.
func (e *Evaluator) Silhouette(ctx context.Context, X [][]float64, cfg cluster.Config, ks []int) ([]analysis.SilhouetteRun, error) {
	start := time.Now()
	runs, err := analysis.Silhouette(ctx, X, cfg, ks, e.sweepOptions()...)
	e.recordSweep(ctx, SweepSilhouette, cfg.Algorithm, len(ks), time.Since(start), err)
	return runs, translateError(err)
}

// Elbow runs an elbow sweep over ks.
func (e *Evaluator) Elbow(ctx context.Context, X [][]float64, cfg cluster.Config, ks []int) ([]analysis.ElbowPoint, error) {
	start := time.Now()
	points, err := analysis.Elbow(ctx, X, cfg, ks, e.sweepOptions()...)
	e.recordSweep(ctx, SweepElbow, cfg.Algorithm, len(ks), time.Since(start), err)
	return points, translateError(err)
}

func (e *Evaluator) recordSweep(ctx context.Context, kind string, algo cluster.Algorithm, candidates int, duration time.Duration, err error) {
	e.opts.metricsCollector.RecordSweep(kind, candidates, duration, err)
	e.opts.logger.WithAlgorithm(algo).LogSweep(ctx, kind, candidates, duration, err)
}

// Load reads an archived report by ID, or the latest for archive.LatestID.
func (e *Evaluator) Load(ctx context.Context, id string) (*archive.Report, error) {
	if e.opts.archive == nil {
		return nil, ErrNotFound
	}
	start := time.Now()
	r, err := e.opts.archive.Load(ctx, id)
	e.opts.metricsCollector.RecordArchive("load", time.Since(start), err)
	return r, translateError(err)
}
