package metrics

import (
	"math"

	"github.com/hupe1980/clustereval/distance"
)

// SilhouetteSamples returns the silhouette coefficient of every row:
// (b - a) / max(a, b), where a is the mean distance to the other members of
// its cluster and b the smallest mean distance to another cluster.
//
// Rows in singleton clusters score 0.
func SilhouetteSamples(X [][]float64, labels []int, metric distance.Metric) ([]float64, error) {
	if err := checkLengths("labels", len(X), len(labels)); err != nil {
		return nil, err
	}
	if err := checkFeatures(X); err != nil {
		return nil, err
	}
	uniq, pos := index(labels)
	k := len(uniq)
	if err := checkLabelCount(k, len(X)); err != nil {
		return nil, err
	}
	fn, err := distance.Provider(metric)
	if err != nil {
		return nil, err
	}

	n := len(X)
	lab := make([]int, n)
	counts := make([]int, k)
	for i, l := range labels {
		lab[i] = pos[l]
		counts[lab[i]]++
	}

	// sums[i*k+c] is the total distance from row i to the rows of cluster c.
	sums := make([]float64, n*k)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := fn(X[i], X[j])
			sums[i*k+lab[j]] += d
			sums[j*k+lab[i]] += d
		}
	}

	out := make([]float64, n)
	for i := range out {
		own := lab[i]
		if counts[own] < 2 {
			continue
		}
		a := sums[i*k+own] / float64(counts[own]-1)
		b := math.Inf(1)
		for c := range k {
			if c == own {
				continue
			}
			b = math.Min(b, sums[i*k+c]/float64(counts[c]))
		}
		if den := math.Max(a, b); den > 0 {
			out[i] = (b - a) / den
		}
	}
	return out, nil
}

// SilhouetteScore returns the mean of SilhouetteSamples.
func SilhouetteScore(X [][]float64, labels []int, metric distance.Metric) (float64, error) {
	samples, err := SilhouetteSamples(X, labels, metric)
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, s := range samples {
		sum += s
	}
	return sum / float64(len(samples)), nil
}
