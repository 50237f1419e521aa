package metrics

// AdjustedRandIndex returns the Rand index of yPred against yTrue adjusted
// for chance. It is 1 for identical partitions, close to 0 for random
// labelings and can be negative.
func AdjustedRandIndex(yTrue, yPred []int) (float64, error) {
	c, err := NewContingency(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return c.AdjustedRandIndex(), nil
}

// AdjustedRandIndex computes the index from the pair confusion matrix.
func (c *Contingency) AdjustedRandIndex() float64 {
	tn, fp, fn, tp := c.pairConfusion()

	// Special cases: empty data or full agreement.
	if fn == 0 && fp == 0 {
		return 1
	}

	num := 2 * (tp*tn - fn*fp)
	den := (tp+fn)*(fn+tn) + (tp+fp)*(fp+tn)
	return num / den
}

// pairConfusion counts ordered sample pairs by whether they share a cluster
// and whether they share a category. Values are float64 to avoid overflow.
func (c *Contingency) pairConfusion() (tn, fp, fn, tp float64) {
	n := float64(c.N)

	var sumSquares float64
	for _, row := range c.Counts {
		for _, v := range row {
			sumSquares += float64(v) * float64(v)
		}
	}
	var rowSq, colSq float64
	for _, v := range c.RowSums() {
		rowSq += float64(v) * float64(v)
	}
	for _, v := range c.ColSums() {
		colSq += float64(v) * float64(v)
	}

	tp = sumSquares - n
	fp = colSq - sumSquares
	fn = rowSq - sumSquares
	tn = n*n - fp - fn - sumSquares
	return tn, fp, fn, tp
}
