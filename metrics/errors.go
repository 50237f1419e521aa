package metrics

import (
	"errors"
	"fmt"
)

var (
	// ErrLengthMismatch is matched by every *LengthMismatchError.
	ErrLengthMismatch = errors.New("label length mismatch")

	// ErrMissingFeatures is returned by Compute when no feature matrix is given.
	ErrMissingFeatures = errors.New("feature matrix is required")

	// ErrInvalidLabelCount is returned when a score needs between 2 and n-1
	// distinct labels.
	ErrInvalidLabelCount = errors.New("invalid number of labels")

	// ErrInvalidFeatures is returned for a feature matrix with rows of
	// different widths.
	ErrInvalidFeatures = errors.New("invalid features")

	// ErrNoUnclaimedCluster is returned by Reconcile when every cluster covering
	// a category was already claimed by an earlier category.
	ErrNoUnclaimedCluster = errors.New("no unclaimed cluster available")
)

// LengthMismatchError reports two aligned inputs of different lengths.
type LengthMismatchError struct {
	What     string
	Expected int
	Actual   int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %d, got %d", e.What, e.Expected, e.Actual)
}

// Is makes errors.Is(err, ErrLengthMismatch) succeed.
func (e *LengthMismatchError) Is(target error) bool { return target == ErrLengthMismatch }

func checkLengths(what string, expected, actual int) error {
	if expected != actual {
		return &LengthMismatchError{What: what, Expected: expected, Actual: actual}
	}
	return nil
}

func checkLabelCount(nLabels, nSamples int) error {
	if nLabels < 2 || nLabels > nSamples-1 {
		return fmt.Errorf("%w: %d labels for %d samples, valid range is 2 to n_samples-1", ErrInvalidLabelCount, nLabels, nSamples)
	}
	return nil
}

func checkFeatures(X [][]float64) error {
	if len(X) == 0 {
		return nil
	}
	dim := len(X[0])
	for i, row := range X {
		if len(row) != dim {
			return fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidFeatures, i, len(row), dim)
		}
	}
	return nil
}
