package cluster

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/hupe1980/clustereval/distance"
)

// DefaultMaxIter is the iteration cap used when Config.MaxIter is zero.
const DefaultMaxIter = 300

// Clusterer is an unfitted or fitted clustering model.
type Clusterer interface {
	// Fit clusters the rows of X. It checks ctx between iterations.
	Fit(ctx context.Context, X [][]float64) error

	// Labels returns the cluster index of each row, or nil before Fit.
	Labels() []int

	// Algorithm returns the algorithm implemented by the model.
	Algorithm() Algorithm
}

// CentroidModel is implemented by models that expose cluster centers.
type CentroidModel interface {
	Centroids() [][]float64
}

// InertiaModel is implemented by models that expose their final cost.
type InertiaModel interface {
	Inertia() float64
}

// Config configures Select. It is passed by value per call; there are no
// package-level defaults to alias.
type Config struct {
	Algorithm Algorithm
	NClusters int

	// CategoricalFeatures lists the column indices treated as categorical by
	// KPrototypes. Other algorithms ignore it.
	CategoricalFeatures []int

	// Agglomerative is required when Algorithm is Agglomerative.
	Agglomerative *AggloParams

	RandomSeed int64

	// MaxIter caps the iterations of the iterative algorithms.
	// Zero selects DefaultMaxIter.
	MaxIter int
}

func (c Config) maxIter() int {
	if c.MaxIter <= 0 {
		return DefaultMaxIter
	}
	return c.MaxIter
}

// Select returns an unfitted clusterer for cfg and the distance metric paired
// with the algorithm: euclidean for kmeans, fuzzy and agglo; manhattan for
// kmodes and kproto.
//
// Agglomerative always pairs with euclidean, whatever the configured affinity.
func Select(cfg Config) (Clusterer, distance.Metric, error) {
	if cfg.NClusters < 1 {
		return nil, 0, fmt.Errorf("%w: %d", ErrInvalidClusterCount, cfg.NClusters)
	}

	switch cfg.Algorithm {
	case KMeans:
		return newKMeans(cfg), distance.MetricEuclidean, nil
	case KModes:
		return newKModes(cfg), distance.MetricManhattan, nil
	case KPrototypes:
		return newKPrototypes(cfg), distance.MetricManhattan, nil
	case Fuzzy:
		return newFuzzy(cfg), distance.MetricEuclidean, nil
	case Agglomerative:
		if cfg.Agglomerative == nil {
			return nil, 0, fmt.Errorf("%w: missing affinity and linkage", ErrInvalidAggloParams)
		}
		if err := cfg.Agglomerative.Validate(); err != nil {
			return nil, 0, err
		}
		return newAgglomerative(cfg), distance.MetricEuclidean, nil
	default:
		return nil, 0, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, cfg.Algorithm)
	}
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15))
}

// checkData validates X and returns its shape.
func checkData(X [][]float64, k int) (n, dim int, err error) {
	n = len(X)
	if n == 0 {
		return 0, 0, ErrEmptyDataset
	}
	dim = len(X[0])
	for i, row := range X {
		if len(row) != dim {
			return 0, 0, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidFeatures, i, len(row), dim)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, 0, fmt.Errorf("%w: non-finite value at row %d column %d", ErrInvalidFeatures, i, j)
			}
		}
	}
	if n < k {
		return 0, 0, fmt.Errorf("%w: %d samples, %d clusters", ErrNotEnoughSamples, n, k)
	}
	return n, dim, nil
}

// nearest returns the index of the closest center and its distance.
func nearest(x []float64, centers [][]float64, fn distance.Func) (int, float64) {
	best, bestDist := 0, math.Inf(1)
	for j, c := range centers {
		if d := fn(x, c); d < bestDist {
			best, bestDist = j, d
		}
	}
	return best, bestDist
}

// initCenters picks k rows of X as starting centers with k-means++ seeding:
// the first row is uniform, each following row is drawn with probability
// proportional to its cost to the nearest chosen center.
func initCenters(X [][]float64, k int, rng *rand.Rand, cost distance.Func) [][]float64 {
	n := len(X)
	centers := make([][]float64, 0, k)
	centers = append(centers, append([]float64(nil), X[rng.IntN(n)]...))

	closest := make([]float64, n)
	for i, x := range X {
		closest[i] = cost(x, centers[0])
	}

	for len(centers) < k {
		var total float64
		for _, d := range closest {
			total += d
		}

		next := -1
		if total > 0 {
			target := rng.Float64() * total
			for i, d := range closest {
				target -= d
				if target < 0 {
					next = i
					break
				}
			}
		}
		if next < 0 {
			// All remaining rows coincide with a center.
			next = rng.IntN(n)
		}

		c := append([]float64(nil), X[next]...)
		centers = append(centers, c)
		for i, x := range X {
			if d := cost(x, c); d < closest[i] {
				closest[i] = d
			}
		}
	}
	return centers
}

// modeOf returns the most frequent value, ties going to the smallest.
func modeOf(values []float64) float64 {
	counts := make(map[float64]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	var best float64
	bestCount := 0
	for v, c := range counts {
		if c > bestCount || (c == bestCount && v < best) {
			best, bestCount = v, c
		}
	}
	return best
}

func cloneLabels(labels []int) []int {
	if labels == nil {
		return nil
	}
	return append([]int(nil), labels...)
}

func cloneRows(rows [][]float64) [][]float64 {
	if rows == nil {
		return nil
	}
	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = append([]float64(nil), r...)
	}
	return out
}
