package cluster

import (
	"context"

	"github.com/hupe1980/clustereval/distance"
	"gonum.org/v1/gonum/floats"
)

// KMeansModel clusters numeric rows with Lloyd's algorithm.
type KMeansModel struct {
	k       int
	maxIter int
	seed    int64

	labels    []int
	centroids [][]float64
	inertia   float64
	nIter     int
}

func newKMeans(cfg Config) *KMeansModel {
	return &KMeansModel{
		k:       cfg.NClusters,
		maxIter: cfg.maxIter(),
		seed:    cfg.RandomSeed,
	}
}

// Algorithm implements Clusterer.
func (m *KMeansModel) Algorithm() Algorithm { return KMeans }

// Fit trains k centroids from the rows of X.
func (m *KMeansModel) Fit(ctx context.Context, X [][]float64) error {
	n, _, err := checkData(X, m.k)
	if err != nil {
		return err
	}

	rng := newRand(m.seed)
	centroids := initCenters(X, m.k, rng, distance.SquaredEuclidean)

	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}
	counts := make([]int, m.k)

	iter := 0
	for ; iter < m.maxIter; iter++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		// Assignment step
		changed := false
		for i, x := range X {
			best, _ := nearest(x, centroids, distance.SquaredEuclidean)
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}

		if !changed {
			break
		}

		// Update step
		for j := range centroids {
			clear(centroids[j])
			counts[j] = 0
		}
		for i, x := range X {
			floats.Add(centroids[labels[i]], x)
			counts[labels[i]]++
		}
		for j := range centroids {
			if counts[j] > 0 {
				floats.Scale(1/float64(counts[j]), centroids[j])
			} else {
				// Re-seed an empty cluster with a random row.
				copy(centroids[j], X[rng.IntN(n)])
			}
		}
	}

	var inertia float64
	for i, x := range X {
		inertia += distance.SquaredEuclidean(x, centroids[labels[i]])
	}

	m.labels = labels
	m.centroids = centroids
	m.inertia = inertia
	m.nIter = iter
	return nil
}

// Labels implements Clusterer.
func (m *KMeansModel) Labels() []int { return cloneLabels(m.labels) }

// Centroids returns the k cluster means.
func (m *KMeansModel) Centroids() [][]float64 { return cloneRows(m.centroids) }

// Inertia returns the sum of squared distances of rows to their centroid.
func (m *KMeansModel) Inertia() float64 { return m.inertia }

// NIter returns the number of iterations run by the last Fit.
func (m *KMeansModel) NIter() int { return m.nIter }
