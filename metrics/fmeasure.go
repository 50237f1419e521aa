package metrics

// F1Binary returns the F1 score treating pos as the positive class.
// It is 0 when there are no true or predicted positives.
func F1Binary(yTrue, yPred []int, pos int) (float64, error) {
	if err := checkLengths("yPred", len(yTrue), len(yPred)); err != nil {
		return 0, err
	}

	var tp, fp, fn int
	for i := range yTrue {
		t, p := yTrue[i] == pos, yPred[i] == pos
		switch {
		case t && p:
			tp++
		case p:
			fp++
		case t:
			fn++
		}
	}
	return f1(tp, fp, fn), nil
}

// F1Micro returns the micro-averaged F1 score over all labels. For
// single-label data it equals the accuracy.
func F1Micro(yTrue, yPred []int) (float64, error) {
	if err := checkLengths("yPred", len(yTrue), len(yPred)); err != nil {
		return 0, err
	}

	var tp int
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			tp++
		}
	}
	miss := len(yTrue) - tp
	return f1(tp, miss, miss), nil
}

func f1(tp, fp, fn int) float64 {
	den := 2*tp + fp + fn
	if den == 0 {
		return 0
	}
	return float64(2*tp) / float64(den)
}
