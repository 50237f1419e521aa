package cluster

import (
	"context"
	"testing"

	"github.com/hupe1980/clustereval/distance"
	"github.com/hupe1980/clustereval/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKMeans_CentroidsAndInertia(t *testing.T) {
	X := [][]float64{{0, 0}, {0, 1}, {100, 0}, {100, 1}}

	c, _, err := Select(Config{Algorithm: KMeans, NClusters: 2, RandomSeed: 7})
	require.NoError(t, err)
	require.NoError(t, c.Fit(context.Background(), X))

	km := c.(*KMeansModel)
	assert.ElementsMatch(t, [][]float64{{0, 0.5}, {100, 0.5}}, km.Centroids())
	assert.InDelta(t, 1.0, km.Inertia(), 1e-9)
	assert.Positive(t, km.NIter())
}

func TestKModes_Categorical(t *testing.T) {
	rng := testutil.NewRNG(11)
	X, y := rng.CategoricalBlobs(3, 20, 6, 0)

	c, _, err := Select(Config{Algorithm: KModes, NClusters: 3, RandomSeed: 3})
	require.NoError(t, err)
	require.NoError(t, c.Fit(context.Background(), X))

	assertSamePartition(t, y, c.Labels())

	km := c.(*KModesModel)
	for _, centroid := range km.Centroids() {
		for _, v := range centroid[1:] {
			assert.Equal(t, centroid[0], v)
		}
	}
	assert.Zero(t, km.Inertia())
}

func TestKPrototypes_Mixed(t *testing.T) {
	rng := testutil.NewRNG(5)
	num, y := rng.Blobs([][]float64{{0, 0}, {30, 30}}, 15, 1)

	X := make([][]float64, len(num))
	for i, row := range num {
		// Column 2 is a categorical copy of the group.
		X[i] = []float64{row[0], row[1], float64(y[i] * 7)}
	}

	c, _, err := Select(Config{Algorithm: KPrototypes, NClusters: 2, CategoricalFeatures: []int{2}, RandomSeed: 1})
	require.NoError(t, err)
	require.NoError(t, c.Fit(context.Background(), X))

	assertSamePartition(t, y, c.Labels())

	kp := c.(*KPrototypesModel)
	assert.Positive(t, kp.Gamma())
	for _, centroid := range kp.Centroids() {
		assert.Contains(t, []float64{0, 7}, centroid[2])
	}
}

func TestKPrototypes_InvalidCategorical(t *testing.T) {
	X := [][]float64{{1, 2}, {3, 4}}

	for _, cat := range [][]int{{5}, {-1}, {0, 0}} {
		c, _, err := Select(Config{Algorithm: KPrototypes, NClusters: 2, CategoricalFeatures: cat})
		require.NoError(t, err)
		assert.ErrorIs(t, c.Fit(context.Background(), X), ErrInvalidFeatures)
	}
}

func TestKPrototypes_AllCategorical(t *testing.T) {
	X := [][]float64{{1, 1}, {1, 1}, {2, 2}, {2, 2}}

	c, _, err := Select(Config{Algorithm: KPrototypes, NClusters: 2, CategoricalFeatures: []int{0, 1}})
	require.NoError(t, err)
	require.NoError(t, c.Fit(context.Background(), X))

	assertSamePartition(t, []int{0, 0, 1, 1}, c.Labels())
	assert.Equal(t, 1.0, c.(*KPrototypesModel).Gamma())
	assert.Zero(t, c.(*KPrototypesModel).Inertia())
}

func TestFuzzy_Memberships(t *testing.T) {
	rng := testutil.NewRNG(8)
	X, y := rng.Blobs([][]float64{{0, 0}, {20, 0}}, 10, 0.5)

	c, _, err := Select(Config{Algorithm: Fuzzy, NClusters: 2, RandomSeed: 2})
	require.NoError(t, err)
	require.NoError(t, c.Fit(context.Background(), X))

	fm := c.(*FuzzyModel)
	labels := fm.Labels()
	assertSamePartition(t, y, labels)

	for i, u := range fm.Memberships() {
		require.Len(t, u, 2)
		assert.InDelta(t, 1.0, u[0]+u[1], 1e-9)
		assert.Greater(t, u[labels[i]], 0.5)
	}
	assert.Len(t, fm.Centroids(), 2)
	assert.Positive(t, fm.Inertia())
}

func TestAgglomerative_Cosine(t *testing.T) {
	// Two directions at different magnitudes: cosine groups by angle.
	X := [][]float64{{1, 0.05}, {5, 0.2}, {20, 1}, {0.05, 1}, {0.2, 6}, {1, 30}}

	c, metric, err := Select(Config{
		Algorithm:     Agglomerative,
		NClusters:     2,
		Agglomerative: &AggloParams{Affinity: distance.MetricCosine, Linkage: LinkageAverage},
	})
	require.NoError(t, err)
	assert.Equal(t, distance.MetricEuclidean, metric)
	require.NoError(t, c.Fit(context.Background(), X))

	assert.Equal(t, []int{0, 0, 0, 1, 1, 1}, c.Labels())

	am := c.(*AgglomerativeModel)
	assert.Equal(t, distance.MetricCosine, am.Affinity())
	assert.Equal(t, LinkageAverage, am.Linkage())
}

func TestAgglomerative_NoCentroids(t *testing.T) {
	c, _, err := Select(Config{Algorithm: Agglomerative, NClusters: 2, Agglomerative: &AggloParams{Linkage: LinkageWard}})
	require.NoError(t, err)

	_, ok := c.(CentroidModel)
	assert.False(t, ok)
	_, ok = c.(InertiaModel)
	assert.False(t, ok)
}

func TestAgglomerative_OverflowingDistances(t *testing.T) {
	// Squared euclidean distances overflow to +Inf for every pair.
	X := [][]float64{{0}, {1e200}, {-1e200}}

	tests := []struct {
		k    int
		want []int
	}{
		{1, []int{0, 0, 0}},
		{2, []int{0, 0, 1}},
	}
	for _, tt := range tests {
		c, _, err := Select(Config{Algorithm: Agglomerative, NClusters: tt.k, Agglomerative: &AggloParams{Linkage: LinkageWard}})
		require.NoError(t, err)
		require.NoError(t, c.Fit(context.Background(), X))
		assert.Equal(t, tt.want, c.Labels())
	}
}

func TestFirstActivePair(t *testing.T) {
	a, b := firstActivePair([]bool{false, true, false, true, true})
	assert.Equal(t, 1, a)
	assert.Equal(t, 3, b)
}

func TestMatrixBytes(t *testing.T) {
	assert.Equal(t, int64(800), MatrixBytes(10))
}
