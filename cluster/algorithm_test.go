package cluster

import (
	"testing"

	"github.com/hupe1980/clustereval/distance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlgorithm_String(t *testing.T) {
	assert.Equal(t, "kmeans", KMeans.String())
	assert.Equal(t, "kmodes", KModes.String())
	assert.Equal(t, "kproto", KPrototypes.String())
	assert.Equal(t, "fuzzy", Fuzzy.String())
	assert.Equal(t, "agglo", Agglomerative.String())
	assert.Equal(t, "Unknown(9)", Algorithm(9).String())
}

func TestParseAlgorithm(t *testing.T) {
	for _, a := range Algorithms() {
		got, err := ParseAlgorithm(" " + a.String() + " ")
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}

	_, err := ParseAlgorithm("dbscan")
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
}

func TestAlgorithm_Text(t *testing.T) {
	var a Algorithm
	require.NoError(t, a.UnmarshalText([]byte("KPROTO")))
	assert.Equal(t, KPrototypes, a)

	b, err := Fuzzy.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "fuzzy", string(b))

	_, err = Algorithm(-1).MarshalText()
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
}

func TestAlgorithm_SilhouetteMetric(t *testing.T) {
	assert.Equal(t, distance.MetricManhattan, KModes.SilhouetteMetric())
	assert.Equal(t, distance.MetricManhattan, KPrototypes.SilhouetteMetric())
	assert.Equal(t, distance.MetricEuclidean, KMeans.SilhouetteMetric())
	assert.Equal(t, distance.MetricEuclidean, Agglomerative.SilhouetteMetric())
}

func TestParseLinkage(t *testing.T) {
	for _, l := range []Linkage{LinkageWard, LinkageComplete, LinkageAverage, LinkageSingle} {
		got, err := ParseLinkage(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, got)
	}

	_, err := ParseLinkage("centroid")
	assert.ErrorIs(t, err, ErrInvalidAggloParams)
}

func TestAggloParams_Choices(t *testing.T) {
	for _, aff := range AffinityChoices {
		for _, link := range LinkageChoices {
			assert.NoError(t, AggloParams{Affinity: aff, Linkage: link}.Validate())
		}
	}
}
