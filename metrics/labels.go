package metrics

import "slices"

// Unique returns the distinct values of labels in ascending order.
func Unique(labels []int) []int {
	out := slices.Clone(labels)
	slices.Sort(out)
	return slices.Compact(out)
}

// Mode returns the most frequent value, ties going to the smallest.
// It reports false for empty input.
func Mode(values []int) (int, bool) {
	if len(values) == 0 {
		return 0, false
	}
	counts := make(map[int]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	best, bestCount := 0, 0
	for v, c := range counts {
		if c > bestCount || (c == bestCount && v < best) {
			best, bestCount = v, c
		}
	}
	return best, true
}

// index maps each distinct label to its position in Unique(labels).
func index(labels []int) ([]int, map[int]int) {
	uniq := Unique(labels)
	pos := make(map[int]int, len(uniq))
	for i, l := range uniq {
		pos[l] = i
	}
	return uniq, pos
}
