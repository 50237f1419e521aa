package clustereval

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/hupe1980/clustereval/archive"
	"github.com/hupe1980/clustereval/blobstore"
	"github.com/hupe1980/clustereval/cluster"
	"github.com/hupe1980/clustereval/distance"
	"github.com/hupe1980/clustereval/metrics"
	"github.com/hupe1980/clustereval/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blobs(t *testing.T) ([][]float64, []int) {
	t.Helper()
	rng := testutil.NewRNG(42)
	return rng.Blobs([][]float64{{0, 0}, {40, 40}, {-40, 40}}, 15, 1)
}

func TestEvaluator_Evaluate(t *testing.T) {
	X, y := blobs(t)
	mc := &BasicMetricsCollector{}
	a := archive.New(blobstore.NewMemoryStore())

	ev := New(
		WithExperiment("blobs"),
		WithMetricsCollector(mc),
		WithArchive(a),
	)

	res, err := ev.Evaluate(context.Background(), X, y, cluster.Config{Algorithm: cluster.KMeans, NClusters: 3, RandomSeed: 10})
	require.NoError(t, err)

	assert.Equal(t, distance.MetricEuclidean, res.Metric)
	assert.Len(t, res.Labels, len(X))
	assert.NotEmpty(t, res.Report.ID)
	assert.Equal(t, "blobs", res.Report.Experiment)
	assert.InDelta(t, 1.0, res.Report.Metrics[metrics.KeyARI], 1e-9)
	assert.InDelta(t, 1.0, res.Report.Metrics[metrics.KeyPurity], 1e-9)
	assert.InDelta(t, 1.0, res.Report.Metrics[metrics.KeyFMeasure], 1e-9)
	assert.Greater(t, res.Report.Metrics[metrics.KeySilhouette], 0.9)
	assert.NotEmpty(t, res.Blob)

	loaded, err := ev.Load(context.Background(), archive.LatestID)
	require.NoError(t, err)
	assert.Equal(t, res.Report.ID, loaded.ID)
	assert.Equal(t, res.Report.Metrics, loaded.Metrics)

	stats := mc.GetStats()
	assert.Equal(t, int64(1), stats.FitCount)
	assert.Equal(t, int64(1), stats.EvaluateCount)
	assert.Equal(t, int64(2), stats.ArchiveCount)
	assert.Zero(t, stats.FitErrors+stats.EvaluateErrors+stats.ArchiveErrors)
}

func TestEvaluator_EvaluateWithoutArchive(t *testing.T) {
	X, y := blobs(t)
	ev := New()

	res, err := ev.Evaluate(context.Background(), X, y, cluster.Config{Algorithm: cluster.Fuzzy, NClusters: 3, RandomSeed: 1})
	require.NoError(t, err)
	assert.Empty(t, res.Blob)
	assert.Nil(t, ev.Archive())

	_, err = ev.Load(context.Background(), res.Report.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEvaluator_Errors(t *testing.T) {
	X, y := blobs(t)
	mc := &BasicMetricsCollector{}
	ev := New(WithMetricsCollector(mc), WithLimits(1, 64))
	ctx := context.Background()

	tests := []struct {
		name    string
		X       [][]float64
		y       []int
		cfg     cluster.Config
		wantErr error
	}{
		{"unsupported algorithm", X, y, cluster.Config{Algorithm: cluster.Algorithm(42), NClusters: 2}, ErrUnsupported},
		{"missing agglo params", X, y, cluster.Config{Algorithm: cluster.Agglomerative, NClusters: 2}, ErrUnsupported},
		{"zero clusters", X, y, cluster.Config{Algorithm: cluster.KMeans}, ErrInvalidInput},
		{"too many clusters", X[:2], y[:2], cluster.Config{Algorithm: cluster.KMeans, NClusters: 3}, ErrInvalidInput},
		{"empty dataset", nil, nil, cluster.Config{Algorithm: cluster.KMeans, NClusters: 1}, ErrInvalidInput},
		{"label mismatch", X, y[:5], cluster.Config{Algorithm: cluster.KMeans, NClusters: 3}, ErrInvalidInput},
		{"memory budget", X, y, cluster.Config{
			Algorithm:     cluster.Agglomerative,
			NClusters:     3,
			Agglomerative: &cluster.AggloParams{Affinity: distance.MetricEuclidean, Linkage: cluster.LinkageWard},
		}, ErrMemoryLimitExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ev.Evaluate(ctx, tt.X, tt.y, tt.cfg)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("length mismatch is typed", func(t *testing.T) {
		_, err := ev.Evaluate(ctx, X, y[:5], cluster.Config{Algorithm: cluster.KMeans, NClusters: 3})
		var lm *ErrLengthMismatch
		require.True(t, errors.As(err, &lm))
		assert.Equal(t, 5, lm.Actual)
		assert.ErrorIs(t, err, metrics.ErrLengthMismatch)
	})

	assert.Positive(t, mc.GetStats().FitErrors)
}

func TestEvaluator_Score(t *testing.T) {
	ev := New()
	X := [][]float64{{0, 0}, {0, 1}, {10, 0}, {10, 1}}

	rec, err := ev.Score(context.Background(), []int{0, 0, 1, 1}, []int{5, 5, 9, 9}, X, cluster.KMeans)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, rec[metrics.KeyARI], 1e-12)
	assert.InDelta(t, 1.0, rec[metrics.KeyPurity], 1e-12)

	_, err = ev.Score(context.Background(), []int{0, 0, 1, 1}, []int{5, 5, 9, 9}, nil, cluster.KMeans)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, metrics.ErrMissingFeatures)

	ragged := [][]float64{{0, 0}, {1}, {10, 0}, {11, 1}}
	_, err = ev.Score(context.Background(), []int{0, 0, 1, 1}, []int{0, 0, 1, 1}, ragged, cluster.KMeans)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, metrics.ErrInvalidFeatures)
}

func TestEvaluator_Sweeps(t *testing.T) {
	X, _ := blobs(t)
	mc := &BasicMetricsCollector{}
	var buf bytes.Buffer
	ev := New(
		WithMetricsCollector(mc),
		WithLogger(NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))),
		WithWorkers(2),
	)
	ctx := context.Background()
	cfg := cluster.Config{Algorithm: cluster.KMeans, RandomSeed: 10}

	runs, err := ev.Silhouette(ctx, X, cfg, []int{2, 3, 4})
	require.NoError(t, err)
	require.Len(t, runs, 3)

	points, err := ev.Elbow(ctx, X, cfg, []int{2, 3})
	require.NoError(t, err)
	require.Len(t, points, 2)

	_, err = ev.Elbow(ctx, X, cluster.Config{
		Algorithm:     cluster.Agglomerative,
		Agglomerative: &cluster.AggloParams{Affinity: distance.MetricEuclidean, Linkage: cluster.LinkageSingle},
	}, []int{2})
	assert.ErrorIs(t, err, ErrNoInertia)

	stats := mc.GetStats()
	assert.Equal(t, int64(3), stats.SweepCount)
	assert.Equal(t, int64(6), stats.SweepCandidates)
	assert.Equal(t, int64(1), stats.SweepErrors)

	out := buf.String()
	assert.Contains(t, out, "silhouette_avg")
	assert.Contains(t, out, "sweep completed")
	assert.Contains(t, out, "sweep failed")
}
