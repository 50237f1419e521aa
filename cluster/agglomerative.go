package cluster

import (
	"context"
	"math"

	"github.com/hupe1980/clustereval/distance"
)

// AgglomerativeModel merges clusters bottom-up until NClusters remain.
//
// Distances between merged clusters are maintained with the Lance-Williams
// update on a dense n x n matrix, so memory grows with the square of the
// number of rows. Ward linkage works on squared euclidean distances.
//
// The model exposes neither centroids nor inertia.
type AgglomerativeModel struct {
	k        int
	affinity distance.Metric
	linkage  Linkage

	labels []int
}

func newAgglomerative(cfg Config) *AgglomerativeModel {
	return &AgglomerativeModel{
		k:        cfg.NClusters,
		affinity: cfg.Agglomerative.Affinity,
		linkage:  cfg.Agglomerative.Linkage,
	}
}

// MatrixBytes returns the size of the distance matrix built when fitting n rows.
func MatrixBytes(n int) int64 {
	return int64(n) * int64(n) * 8
}

// Algorithm implements Clusterer.
func (m *AgglomerativeModel) Algorithm() Algorithm { return Agglomerative }

// Affinity returns the configured row distance.
func (m *AgglomerativeModel) Affinity() distance.Metric { return m.affinity }

// Linkage returns the configured merge criterion.
func (m *AgglomerativeModel) Linkage() Linkage { return m.linkage }

// Fit clusters the rows of X.
func (m *AgglomerativeModel) Fit(ctx context.Context, X [][]float64) error {
	n, _, err := checkData(X, m.k)
	if err != nil {
		return err
	}

	metric := m.affinity
	if m.linkage == LinkageWard {
		metric = distance.MetricSquaredEuclidean
	}
	fn, err := distance.Provider(metric)
	if err != nil {
		return err
	}

	dist := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := fn(X[i], X[j])
			dist[i*n+j] = d
			dist[j*n+i] = d
		}
	}

	active := make([]bool, n)
	size := make([]int, n)
	parent := make([]int, n)
	for i := range active {
		active[i] = true
		size[i] = 1
		parent[i] = i
	}

	for clusters := n; clusters > m.k; clusters-- {
		if err := ctx.Err(); err != nil {
			return err
		}

		// Seed with the first active pair so overflowing (+Inf) or NaN
		// distances still yield a merge.
		a, b := firstActivePair(active)
		best := dist[a*n+b]
		for i := a; i < n; i++ {
			if !active[i] {
				continue
			}
			row := dist[i*n : (i+1)*n]
			for j := i + 1; j < n; j++ {
				if active[j] && row[j] < best {
					best, a, b = row[j], i, j
				}
			}
		}

		for c := 0; c < n; c++ {
			if !active[c] || c == a || c == b {
				continue
			}
			d := m.lanceWilliams(dist[a*n+c], dist[b*n+c], best, size[a], size[b], size[c])
			dist[a*n+c] = d
			dist[c*n+a] = d
		}

		size[a] += size[b]
		active[b] = false
		parent[b] = a
	}

	root := func(i int) int {
		for parent[i] != i {
			i = parent[i]
		}
		return i
	}

	labels := make([]int, n)
	ids := make(map[int]int, m.k)
	for i := range labels {
		r := root(i)
		id, ok := ids[r]
		if !ok {
			id = len(ids)
			ids[r] = id
		}
		labels[i] = id
	}

	m.labels = labels
	return nil
}

// lanceWilliams returns the distance from cluster c to the union of a and b.
func (m *AgglomerativeModel) lanceWilliams(dac, dbc, dab float64, na, nb, nc int) float64 {
	switch m.linkage {
	case LinkageSingle:
		return math.Min(dac, dbc)
	case LinkageComplete:
		return math.Max(dac, dbc)
	case LinkageAverage:
		return (float64(na)*dac + float64(nb)*dbc) / float64(na+nb)
	default: // ward
		fa, fb, fc := float64(na), float64(nb), float64(nc)
		return ((fa+fc)*dac + (fb+fc)*dbc - fc*dab) / (fa + fb + fc)
	}
}

// Labels implements Clusterer. Clusters are numbered in order of first
// appearance.
func (m *AgglomerativeModel) Labels() []int { return cloneLabels(m.labels) }

// firstActivePair returns the two lowest active indices. At least two
// clusters must be active.
func firstActivePair(active []bool) (int, int) {
	a := -1
	for i, ok := range active {
		if !ok {
			continue
		}
		if a < 0 {
			a = i
			continue
		}
		return a, i
	}
	return a, -1
}
