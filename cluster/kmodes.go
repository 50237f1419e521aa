package cluster

import (
	"context"

	"github.com/hupe1980/clustereval/distance"
)

// KModesModel clusters integer-coded categorical rows. Dissimilarity is the
// number of mismatching attributes and each centroid attribute is the mode of
// its members.
type KModesModel struct {
	k       int
	maxIter int
	seed    int64

	labels    []int
	centroids [][]float64
	cost      float64
}

func newKModes(cfg Config) *KModesModel {
	return &KModesModel{
		k:       cfg.NClusters,
		maxIter: cfg.maxIter(),
		seed:    cfg.RandomSeed,
	}
}

// Algorithm implements Clusterer.
func (m *KModesModel) Algorithm() Algorithm { return KModes }

// Fit clusters the rows of X.
func (m *KModesModel) Fit(ctx context.Context, X [][]float64) error {
	n, dim, err := checkData(X, m.k)
	if err != nil {
		return err
	}

	rng := newRand(m.seed)
	centroids := initCenters(X, m.k, rng, distance.Hamming)

	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}
	members := make([][]int, m.k)
	column := make([]float64, 0, n)

	for iter := 0; iter < m.maxIter; iter++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		changed := false
		for i, x := range X {
			best, _ := nearest(x, centroids, distance.Hamming)
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}
		if !changed {
			break
		}

		for j := range members {
			members[j] = members[j][:0]
		}
		for i, l := range labels {
			members[l] = append(members[l], i)
		}
		for j, idx := range members {
			if len(idx) == 0 {
				copy(centroids[j], X[rng.IntN(n)])
				continue
			}
			for d := 0; d < dim; d++ {
				column = column[:0]
				for _, i := range idx {
					column = append(column, X[i][d])
				}
				centroids[j][d] = modeOf(column)
			}
		}
	}

	var cost float64
	for i, x := range X {
		cost += distance.Hamming(x, centroids[labels[i]])
	}

	m.labels = labels
	m.centroids = centroids
	m.cost = cost
	return nil
}

// Labels implements Clusterer.
func (m *KModesModel) Labels() []int { return cloneLabels(m.labels) }

// Centroids returns the k cluster modes.
func (m *KModesModel) Centroids() [][]float64 { return cloneRows(m.centroids) }

// Inertia returns the total number of mismatches between rows and their mode.
func (m *KModesModel) Inertia() float64 { return m.cost }
