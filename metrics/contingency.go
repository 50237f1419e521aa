package metrics

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// Contingency counts co-occurrences of true categories (rows) and predicted
// clusters (columns). Both axes are sorted ascending.
type Contingency struct {
	Categories []int
	Clusters   []int
	Counts     [][]int
	N          int
}

// NewContingency builds the contingency table of yTrue against yPred.
func NewContingency(yTrue, yPred []int) (*Contingency, error) {
	if err := checkLengths("yPred", len(yTrue), len(yPred)); err != nil {
		return nil, err
	}

	categories, catBitmaps := partition(yTrue)
	clusters, clusterBitmaps := partition(yPred)

	counts := make([][]int, len(categories))
	for i, cb := range catBitmaps {
		counts[i] = make([]int, len(clusters))
		for j, pb := range clusterBitmaps {
			counts[i][j] = int(cb.AndCardinality(pb))
		}
	}

	return &Contingency{
		Categories: categories,
		Clusters:   clusters,
		Counts:     counts,
		N:          len(yTrue),
	}, nil
}

// partition returns the sorted distinct labels and, for each, the bitmap of
// row positions holding it.
func partition(labels []int) ([]int, []*roaring.Bitmap) {
	uniq, pos := index(labels)
	bitmaps := make([]*roaring.Bitmap, len(uniq))
	for i := range bitmaps {
		bitmaps[i] = roaring.New()
	}
	for row, l := range labels {
		bitmaps[pos[l]].Add(uint32(row))
	}
	for _, b := range bitmaps {
		b.RunOptimize()
	}
	return uniq, bitmaps
}

// RowSums returns the number of rows per category.
func (c *Contingency) RowSums() []int {
	sums := make([]int, len(c.Categories))
	for i, row := range c.Counts {
		for _, v := range row {
			sums[i] += v
		}
	}
	return sums
}

// ColSums returns the number of rows per cluster.
func (c *Contingency) ColSums() []int {
	sums := make([]int, len(c.Clusters))
	for _, row := range c.Counts {
		for j, v := range row {
			sums[j] += v
		}
	}
	return sums
}
