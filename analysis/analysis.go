package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/hupe1980/clustereval/cluster"
	"github.com/hupe1980/clustereval/distance"
	"github.com/hupe1980/clustereval/internal/resource"
	"github.com/hupe1980/clustereval/metrics"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNoInertia is returned by Elbow for models without an inertia.
	ErrNoInertia = errors.New("model does not expose inertia")

	// ErrNoCandidates is returned when the sweep has no k to try.
	ErrNoCandidates = errors.New("no candidate cluster counts")
)

// SilhouetteRun is the outcome of one silhouette fit.
type SilhouetteRun struct {
	K         int
	Algorithm cluster.Algorithm
	Metric    distance.Metric
	Average   float64
	Samples   []float64
	Labels    []int

	// Centroids is nil when the model exposes none.
	Centroids [][]float64
}

// ElbowPoint is the inertia at one k.
type ElbowPoint struct {
	K       int
	Inertia float64
}

type options struct {
	workers int
	rc      *resource.Controller
	logger  *slog.Logger
}

// Option configures a sweep.
type Option func(*options)

// WithWorkers bounds the number of concurrent fits. Zero or less means one
// worker per candidate.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithResourceController gates fits through rc, which also reserves the
// agglomerative distance matrix.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) { o.rc = rc }
}

// WithLimits creates a controller that allows maxFits concurrent fits and
// reserves at most memoryLimitBytes for agglomerative distance matrices.
func WithLimits(maxFits int, memoryLimitBytes int64) Option {
	return func(o *options) {
		o.rc = resource.NewController(resource.Config{
			MaxConcurrentFits: int64(maxFits),
			MemoryLimitBytes:  memoryLimitBytes,
		})
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func applyOptions(ks []int, optFns []Option) options {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, fn := range optFns {
		fn(&o)
	}
	if o.workers <= 0 {
		o.workers = len(ks)
	}
	return o
}

// candidates returns the sorted distinct ks.
func candidates(ks []int) ([]int, error) {
	out := slices.Clone(ks)
	slices.Sort(out)
	out = slices.Compact(out)
	if len(out) == 0 {
		return nil, ErrNoCandidates
	}
	if out[0] < 1 {
		return nil, fmt.Errorf("%w: %d", cluster.ErrInvalidClusterCount, out[0])
	}
	return out, nil
}

// fitFunc scores a fitted model.
type fitFunc[T any] func(k int, model cluster.Clusterer, metric distance.Metric) (T, error)

// sweep fits one model per k and collects score results in k order.
// The first error cancels the remaining fits.
func sweep[T any](ctx context.Context, X [][]float64, cfg cluster.Config, ks []int, o options, check func(cluster.Clusterer) error, score fitFunc[T]) ([]T, error) {
	ks, err := candidates(ks)
	if err != nil {
		return nil, err
	}

	results := make([]T, len(ks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)

	for i, k := range ks {
		g.Go(func() error {
			c := cfg
			c.NClusters = k
			model, metric, err := cluster.Select(c)
			if err != nil {
				return err
			}
			if check != nil {
				if err := check(model); err != nil {
					return err
				}
			}

			var memBytes int64
			if c.Algorithm == cluster.Agglomerative {
				memBytes = cluster.MatrixBytes(len(X))
			}
			lease, err := o.rc.AcquireFit(gctx, memBytes)
			if err != nil {
				return fmt.Errorf("k=%d: %w", k, err)
			}
			defer lease.Release()

			start := time.Now()
			if err := model.Fit(gctx, X); err != nil {
				return fmt.Errorf("k=%d: fit: %w", k, err)
			}
			o.logger.DebugContext(gctx, "fit complete",
				"algorithm", c.Algorithm.String(),
				"n_clusters", k,
				"duration", time.Since(start))

			r, err := score(k, model, metric)
			if err != nil {
				return fmt.Errorf("k=%d: %w", k, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Silhouette fits cfg.Algorithm once per k and scores each partition with
// the selector's metric. cfg.NClusters is ignored.
func Silhouette(ctx context.Context, X [][]float64, cfg cluster.Config, ks []int, optFns ...Option) ([]SilhouetteRun, error) {
	o := applyOptions(ks, optFns)
	return sweep(ctx, X, cfg, ks, o, nil, func(k int, model cluster.Clusterer, metric distance.Metric) (SilhouetteRun, error) {
		labels := model.Labels()
		samples, err := metrics.SilhouetteSamples(X, labels, metric)
		if err != nil {
			return SilhouetteRun{}, fmt.Errorf("silhouette: %w", err)
		}
		var sum float64
		for _, s := range samples {
			sum += s
		}
		run := SilhouetteRun{
			K:         k,
			Algorithm: model.Algorithm(),
			Metric:    metric,
			Average:   sum / float64(len(samples)),
			Samples:   samples,
			Labels:    labels,
		}
		if cm, ok := model.(cluster.CentroidModel); ok {
			run.Centroids = cm.Centroids()
		}
		o.logger.InfoContext(ctx, "silhouette",
			"n_clusters", k,
			"silhouette_avg", run.Average)
		return run, nil
	})
}

// Elbow fits cfg.Algorithm once per k and records the inertia. Models
// without inertia fail with ErrNoInertia before any fit runs.
func Elbow(ctx context.Context, X [][]float64, cfg cluster.Config, ks []int, optFns ...Option) ([]ElbowPoint, error) {
	o := applyOptions(ks, optFns)
	check := func(model cluster.Clusterer) error {
		if _, ok := model.(cluster.InertiaModel); !ok {
			return fmt.Errorf("%w: %s", ErrNoInertia, model.Algorithm())
		}
		return nil
	}
	return sweep(ctx, X, cfg, ks, o, check, func(k int, model cluster.Clusterer, _ distance.Metric) (ElbowPoint, error) {
		p := ElbowPoint{K: k, Inertia: model.(cluster.InertiaModel).Inertia()}
		o.logger.InfoContext(ctx, "elbow", "n_clusters", k, "inertia", p.Inertia)
		return p, nil
	})
}
