package cluster

import (
	"context"
	"math"

	"github.com/hupe1980/clustereval/distance"
)

const (
	fuzzifier      = 2.0
	fuzzyTolerance = 1e-5
)

// FuzzyModel implements fuzzy c-means. Every row belongs to every cluster with
// a membership in [0,1]; Labels reports the cluster of highest membership.
type FuzzyModel struct {
	k       int
	maxIter int
	seed    int64

	labels      []int
	centroids   [][]float64
	memberships [][]float64
	objective   float64
}

func newFuzzy(cfg Config) *FuzzyModel {
	return &FuzzyModel{
		k:       cfg.NClusters,
		maxIter: cfg.maxIter(),
		seed:    cfg.RandomSeed,
	}
}

// Algorithm implements Clusterer.
func (m *FuzzyModel) Algorithm() Algorithm { return Fuzzy }

// Fit clusters the rows of X.
func (m *FuzzyModel) Fit(ctx context.Context, X [][]float64) error {
	n, _, err := checkData(X, m.k)
	if err != nil {
		return err
	}

	rng := newRand(m.seed)
	centers := initCenters(X, m.k, rng, distance.SquaredEuclidean)
	u := make([][]float64, n)
	for i := range u {
		u[i] = make([]float64, m.k)
	}
	dists := make([]float64, m.k)
	exp := 2 / (fuzzifier - 1)

	// updateMemberships recomputes u from centers and returns the largest change.
	updateMemberships := func() float64 {
		var maxDelta float64
		for i, x := range X {
			zero := -1
			for j, c := range centers {
				dists[j] = distance.Euclidean(x, c)
				if dists[j] == 0 && zero < 0 {
					zero = j
				}
			}
			for j := range centers {
				var next float64
				if zero >= 0 {
					if j == zero {
						next = 1
					}
				} else {
					var sum float64
					for _, dk := range dists {
						sum += math.Pow(dists[j]/dk, exp)
					}
					next = 1 / sum
				}
				if delta := math.Abs(next - u[i][j]); delta > maxDelta {
					maxDelta = delta
				}
				u[i][j] = next
			}
		}
		return maxDelta
	}
	updateMemberships()

	for iter := 0; iter < m.maxIter; iter++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		for j := range centers {
			clear(centers[j])
			var wsum float64
			for i, x := range X {
				w := math.Pow(u[i][j], fuzzifier)
				wsum += w
				for d, v := range x {
					centers[j][d] += w * v
				}
			}
			if wsum == 0 {
				copy(centers[j], X[rng.IntN(n)])
				continue
			}
			for d := range centers[j] {
				centers[j][d] /= wsum
			}
		}

		if updateMemberships() < fuzzyTolerance {
			break
		}
	}

	labels := make([]int, n)
	var objective float64
	for i, x := range X {
		best := 0
		for j := range centers {
			if u[i][j] > u[i][best] {
				best = j
			}
			objective += math.Pow(u[i][j], fuzzifier) * distance.SquaredEuclidean(x, centers[j])
		}
		labels[i] = best
	}

	m.labels = labels
	m.centroids = centers
	m.memberships = u
	m.objective = objective
	return nil
}

// Labels implements Clusterer.
func (m *FuzzyModel) Labels() []int { return cloneLabels(m.labels) }

// Centroids returns the membership-weighted cluster centers.
func (m *FuzzyModel) Centroids() [][]float64 { return cloneRows(m.centroids) }

// Memberships returns the n x k membership matrix of the last Fit.
func (m *FuzzyModel) Memberships() [][]float64 { return cloneRows(m.memberships) }

// Inertia returns the fuzzy objective J_m of the last Fit.
func (m *FuzzyModel) Inertia() float64 { return m.objective }
