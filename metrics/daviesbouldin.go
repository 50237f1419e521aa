package metrics

import (
	"math"

	"github.com/hupe1980/clustereval/distance"
	"gonum.org/v1/gonum/floats"
)

// DaviesBouldin returns the mean, over clusters, of the largest ratio of the
// summed intra-cluster scatter to the centroid distance of any other cluster.
// Lower is better; 0 is the minimum.
//
// Scatter is the mean euclidean distance of the members to their centroid.
// Clusters with coinciding centroids do not contribute to each other's ratio.
func DaviesBouldin(X [][]float64, labels []int) (float64, error) {
	if err := checkLengths("labels", len(X), len(labels)); err != nil {
		return 0, err
	}
	if err := checkFeatures(X); err != nil {
		return 0, err
	}
	uniq, pos := index(labels)
	k := len(uniq)
	if err := checkLabelCount(k, len(X)); err != nil {
		return 0, err
	}

	dim := len(X[0])
	centroids := make([][]float64, k)
	counts := make([]int, k)
	for j := range centroids {
		centroids[j] = make([]float64, dim)
	}
	for i, x := range X {
		j := pos[labels[i]]
		floats.Add(centroids[j], x)
		counts[j]++
	}
	for j := range centroids {
		floats.Scale(1/float64(counts[j]), centroids[j])
	}

	scatter := make([]float64, k)
	for i, x := range X {
		j := pos[labels[i]]
		scatter[j] += distance.Euclidean(x, centroids[j])
	}
	for j := range scatter {
		scatter[j] /= float64(counts[j])
	}

	sep := make([][]float64, k)
	allZeroSep := true
	for a := range sep {
		sep[a] = make([]float64, k)
		for b := range sep[a] {
			if a != b {
				sep[a][b] = distance.Euclidean(centroids[a], centroids[b])
				if !nearZero(sep[a][b]) {
					allZeroSep = false
				}
			}
		}
	}

	allZeroScatter := true
	for _, s := range scatter {
		if !nearZero(s) {
			allZeroScatter = false
			break
		}
	}
	if allZeroScatter || allZeroSep {
		return 0, nil
	}

	var total float64
	for a := range k {
		worst := 0.0
		for b := range k {
			if a == b || sep[a][b] == 0 {
				continue
			}
			worst = math.Max(worst, (scatter[a]+scatter[b])/sep[a][b])
		}
		total += worst
	}
	return total / float64(k), nil
}

// nearZero mirrors numpy.allclose(x, 0) for a single value.
func nearZero(x float64) bool {
	return math.Abs(x) <= 1e-8
}
