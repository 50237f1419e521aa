package metrics

import (
	"fmt"
	"slices"
)

// Match assigns each true category the predicted cluster that most of its
// rows fall in. Categories are visited in ascending order and a cluster claimed
// by one category is not offered to later ones. Ties go to the smallest
// cluster id.
func Match(yTrue, yPred []int) (map[int]int, error) {
	if err := checkLengths("yPred", len(yTrue), len(yPred)); err != nil {
		return nil, err
	}

	mapping := make(map[int]int)
	claimed := make(map[int]bool)
	candidates := make([]int, 0, len(yPred))

	for _, category := range Unique(yTrue) {
		candidates = candidates[:0]
		for i, t := range yTrue {
			if t == category && !claimed[yPred[i]] {
				candidates = append(candidates, yPred[i])
			}
		}
		cluster, ok := Mode(candidates)
		if !ok {
			return nil, fmt.Errorf("%w: category %d", ErrNoUnclaimedCluster, category)
		}
		mapping[category] = cluster
		claimed[cluster] = true
	}
	return mapping, nil
}

// Reconcile relabels yPred with the categories chosen by Match and returns
// the relabeled copy together with the mapping. Replacement reads the
// original yPred only, so mappings never chain. Clusters no category claimed
// keep their id.
func Reconcile(yTrue, yPred []int) ([]int, map[int]int, error) {
	mapping, err := Match(yTrue, yPred)
	if err != nil {
		return nil, nil, err
	}

	inverse := make(map[int]int, len(mapping))
	for category, cluster := range mapping {
		inverse[cluster] = category
	}

	out := slices.Clone(yPred)
	for i, p := range yPred {
		if category, ok := inverse[p]; ok {
			out[i] = category
		}
	}
	return out, mapping, nil
}
