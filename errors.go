package clustereval

import (
	"errors"
	"fmt"

	"github.com/hupe1980/clustereval/analysis"
	"github.com/hupe1980/clustereval/archive"
	"github.com/hupe1980/clustereval/blobstore"
	"github.com/hupe1980/clustereval/cluster"
	"github.com/hupe1980/clustereval/internal/resource"
	"github.com/hupe1980/clustereval/metrics"
)

var (
	// ErrInvalidInput is returned for malformed data or labels.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupported is returned for algorithms or parameters that cannot be
	// used together.
	ErrUnsupported = errors.New("unsupported configuration")

	// ErrNotFound is returned when an archived report does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoInertia is returned by Elbow for models without an inertia.
	ErrNoInertia = analysis.ErrNoInertia

	// ErrConcurrentModification is returned when another writer moved the
	// archive pointer first.
	ErrConcurrentModification = blobstore.ErrConcurrentModification

	// ErrMemoryLimitExceeded is returned when an agglomerative fit needs more
	// memory than WithLimits allows.
	ErrMemoryLimitExceeded = resource.ErrMemoryLimitExceeded
)

// ErrLengthMismatch indicates label vectors or a feature matrix of
// different lengths.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrLengthMismatch struct {
	What     string
	Expected int
	Actual   int
	cause    error
}

func (e *ErrLengthMismatch) Error() string {
	return fmt.Sprintf("length mismatch (%s): expected %d, got %d", e.What, e.Expected, e.Actual)
}

func (e *ErrLengthMismatch) Unwrap() error { return e.cause }

// Is makes errors.Is(err, ErrInvalidInput) succeed.
func (e *ErrLengthMismatch) Is(target error) bool { return target == ErrInvalidInput }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var lm *metrics.LengthMismatchError
	if errors.As(err, &lm) {
		return &ErrLengthMismatch{What: lm.What, Expected: lm.Expected, Actual: lm.Actual, cause: err}
	}

	switch {
	case errors.Is(err, metrics.ErrMissingFeatures),
		errors.Is(err, metrics.ErrInvalidLabelCount),
		errors.Is(err, metrics.ErrNoUnclaimedCluster),
		errors.Is(err, metrics.ErrInvalidFeatures),
		errors.Is(err, cluster.ErrInvalidClusterCount),
		errors.Is(err, cluster.ErrNotEnoughSamples),
		errors.Is(err, cluster.ErrEmptyDataset),
		errors.Is(err, cluster.ErrInvalidFeatures):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, cluster.ErrUnsupportedAlgorithm),
		errors.Is(err, cluster.ErrInvalidAggloParams):
		return fmt.Errorf("%w: %w", ErrUnsupported, err)
	case errors.Is(err, archive.ErrReportNotFound),
		errors.Is(err, blobstore.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	return err
}
