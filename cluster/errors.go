package cluster

import "errors"

var (
	// ErrUnsupportedAlgorithm is returned for an algorithm outside the Algorithm enum.
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

	// ErrInvalidClusterCount is returned when the requested cluster count is not positive.
	ErrInvalidClusterCount = errors.New("number of clusters must be positive")

	// ErrInvalidAggloParams is returned when agglomerative parameters are missing
	// or describe an unsupported affinity/linkage pair.
	ErrInvalidAggloParams = errors.New("invalid agglomerative parameters")

	// ErrEmptyDataset is returned when fitting on zero rows.
	ErrEmptyDataset = errors.New("empty dataset")

	// ErrNotEnoughSamples is returned when there are fewer rows than clusters.
	ErrNotEnoughSamples = errors.New("fewer samples than clusters")

	// ErrInvalidFeatures is returned for ragged rows, NaN values or bad
	// categorical column indices.
	ErrInvalidFeatures = errors.New("invalid features")
)
