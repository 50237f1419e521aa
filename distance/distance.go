package distance

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Euclidean calculates the L2 distance between two rows.
// Assumes rows are the same length (caller's responsibility).
func Euclidean(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// Manhattan calculates the L1 distance between two rows.
// Assumes rows are the same length (caller's responsibility).
func Manhattan(a, b []float64) float64 {
	return floats.Distance(a, b, 1)
}

// SquaredEuclidean calculates the squared L2 distance between two rows.
func SquaredEuclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// Cosine calculates 1 - cosine similarity.
// A zero row has no direction, so its distance to anything is 1.
func Cosine(a, b []float64) float64 {
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - floats.Dot(a, b)/(na*nb)
}

// Hamming counts the attributes where a and b differ.
// Used for integer-coded categorical rows.
func Hamming(a, b []float64) float64 {
	var n float64
	for i := range a {
		if a[i] != b[i] {
			n++
		}
	}
	return n
}

// Metric represents the distance metric used to compare rows.
type Metric int

const (
	MetricEuclidean Metric = iota
	MetricManhattan
	MetricSquaredEuclidean
	MetricCosine
	MetricHamming
)

func (m Metric) String() string {
	switch m {
	case MetricEuclidean:
		return "euclidean"
	case MetricManhattan:
		return "manhattan"
	case MetricSquaredEuclidean:
		return "sqeuclidean"
	case MetricCosine:
		return "cosine"
	case MetricHamming:
		return "hamming"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Metric) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Metric) UnmarshalText(text []byte) error {
	parsed, err := ParseMetric(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMetric maps a metric name onto a Metric.
// "l2" and "l1" are accepted as aliases for euclidean and manhattan.
func ParseMetric(name string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "euclidean", "l2":
		return MetricEuclidean, nil
	case "manhattan", "l1", "cityblock":
		return MetricManhattan, nil
	case "sqeuclidean":
		return MetricSquaredEuclidean, nil
	case "cosine":
		return MetricCosine, nil
	case "hamming":
		return MetricHamming, nil
	default:
		return 0, fmt.Errorf("unsupported metric: %q", name)
	}
}

// Func is a function type for distance calculation.
type Func func(a, b []float64) float64

// Provider returns the distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricEuclidean:
		return Euclidean, nil
	case MetricManhattan:
		return Manhattan, nil
	case MetricSquaredEuclidean:
		return SquaredEuclidean, nil
	case MetricCosine:
		return Cosine, nil
	case MetricHamming:
		return Hamming, nil
	default:
		return nil, fmt.Errorf("unsupported metric: %v", m)
	}
}
