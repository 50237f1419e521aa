package metrics

// Purity returns the fraction of rows assigned to the majority true category
// of their cluster. It is 0 for empty input.
func Purity(yTrue, yPred []int) (float64, error) {
	c, err := NewContingency(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return c.Purity(), nil
}

// Purity returns the sum of column maxima divided by N.
func (c *Contingency) Purity() float64 {
	if c.N == 0 {
		return 0
	}
	var total int
	for j := range c.Clusters {
		best := 0
		for i := range c.Categories {
			best = max(best, c.Counts[i][j])
		}
		total += best
	}
	return float64(total) / float64(c.N)
}
