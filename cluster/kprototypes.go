package cluster

import (
	"context"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// KPrototypesModel clusters rows with mixed numeric and categorical columns.
//
// The cost of a row against a prototype is the squared euclidean distance over
// numeric columns plus gamma times the number of mismatching categorical
// columns.
type KPrototypesModel struct {
	k           int
	maxIter     int
	seed        int64
	categorical []int

	gamma     float64
	labels    []int
	centroids [][]float64
	cost      float64
}

func newKPrototypes(cfg Config) *KPrototypesModel {
	return &KPrototypesModel{
		k:           cfg.NClusters,
		maxIter:     cfg.maxIter(),
		seed:        cfg.RandomSeed,
		categorical: slices.Clone(cfg.CategoricalFeatures),
	}
}

// Algorithm implements Clusterer.
func (m *KPrototypesModel) Algorithm() Algorithm { return KPrototypes }

// splitColumns partitions the column indices into numeric and categorical.
func (m *KPrototypesModel) splitColumns(dim int) (numeric, categorical []int, err error) {
	isCat := make([]bool, dim)
	for _, c := range m.categorical {
		if c < 0 || c >= dim {
			return nil, nil, fmt.Errorf("%w: categorical column %d out of range [0,%d)", ErrInvalidFeatures, c, dim)
		}
		if isCat[c] {
			return nil, nil, fmt.Errorf("%w: categorical column %d listed twice", ErrInvalidFeatures, c)
		}
		isCat[c] = true
	}
	for d := 0; d < dim; d++ {
		if isCat[d] {
			categorical = append(categorical, d)
		} else {
			numeric = append(numeric, d)
		}
	}
	return numeric, categorical, nil
}

// estimateGamma returns half the mean standard deviation of the numeric
// columns, or 1 when there are none.
func estimateGamma(X [][]float64, numeric []int) float64 {
	if len(numeric) == 0 || len(X) < 2 {
		return 1
	}
	col := make([]float64, len(X))
	var sum float64
	for _, d := range numeric {
		for i, x := range X {
			col[i] = x[d]
		}
		sum += stat.StdDev(col, nil)
	}
	return 0.5 * sum / float64(len(numeric))
}

func (m *KPrototypesModel) dissimilarity(x, c []float64, numeric, categorical []int) float64 {
	var num float64
	for _, d := range numeric {
		diff := x[d] - c[d]
		num += diff * diff
	}
	var mismatches float64
	for _, d := range categorical {
		if x[d] != c[d] {
			mismatches++
		}
	}
	return num + m.gamma*mismatches
}

// Fit clusters the rows of X.
func (m *KPrototypesModel) Fit(ctx context.Context, X [][]float64) error {
	n, dim, err := checkData(X, m.k)
	if err != nil {
		return err
	}
	numeric, categorical, err := m.splitColumns(dim)
	if err != nil {
		return err
	}

	m.gamma = estimateGamma(X, numeric)
	cost := func(a, b []float64) float64 { return m.dissimilarity(a, b, numeric, categorical) }

	rng := newRand(m.seed)
	centroids := initCenters(X, m.k, rng, cost)

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
			best, _ := nearest(x, centroids, cost)
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
			for _, d := range numeric {
				var sum float64
				for _, i := range idx {
					sum += X[i][d]
				}
				centroids[j][d] = sum / float64(len(idx))
			}
			for _, d := range categorical {
				column = column[:0]
				for _, i := range idx {
					column = append(column, X[i][d])
				}
				centroids[j][d] = modeOf(column)
			}
		}
	}

	var total float64
	for i, x := range X {
		total += cost(x, centroids[labels[i]])
	}

	m.labels = labels
	m.centroids = centroids
	m.cost = total
	return nil
}

// Labels implements Clusterer.
func (m *KPrototypesModel) Labels() []int { return cloneLabels(m.labels) }

// Centroids returns the k prototypes: numeric means and categorical modes.
func (m *KPrototypesModel) Centroids() [][]float64 { return cloneRows(m.centroids) }

// Inertia returns the total cost of the last Fit.
func (m *KPrototypesModel) Inertia() float64 { return m.cost }

// Gamma returns the categorical weight estimated by the last Fit.
func (m *KPrototypesModel) Gamma() float64 { return m.gamma }
