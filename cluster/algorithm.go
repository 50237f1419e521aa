package cluster

import (
	"fmt"
	"strings"

	"github.com/hupe1980/clustereval/distance"
)

// Algorithm identifies a clustering algorithm.
type Algorithm int

const (
	KMeans Algorithm = iota
	KModes
	KPrototypes
	Fuzzy
	Agglomerative
)

var algorithmNames = [...]string{
	KMeans:        "kmeans",
	KModes:        "kmodes",
	KPrototypes:   "kproto",
	Fuzzy:         "fuzzy",
	Agglomerative: "agglo",
}

func (a Algorithm) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Unknown(%d)", int(a))
	}
	return algorithmNames[a]
}

// Valid reports whether a is one of the supported algorithms.
func (a Algorithm) Valid() bool {
	return a >= KMeans && a <= Agglomerative
}

// SilhouetteMetric returns the distance conventionally used to score a
// clustering produced by a: manhattan for the categorical algorithms
// (kmodes, kproto), euclidean otherwise.
func (a Algorithm) SilhouetteMetric() distance.Metric {
	switch a {
	case KModes, KPrototypes:
		return distance.MetricManhattan
	default:
		return distance.MetricEuclidean
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a Algorithm) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedAlgorithm, int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Algorithm) UnmarshalText(text []byte) error {
	parsed, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAlgorithm maps a short algorithm name (kmeans, kmodes, kproto, fuzzy,
// agglo) onto an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for a, s := range algorithmNames {
		if s == n {
			return Algorithm(a), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)
}

// Algorithms returns every supported algorithm in enum order.
func Algorithms() []Algorithm {
	return []Algorithm{KMeans, KModes, KPrototypes, Fuzzy, Agglomerative}
}

// Linkage is the merge criterion of agglomerative clustering.
type Linkage int

const (
	LinkageWard Linkage = iota
	LinkageComplete
	LinkageAverage
	LinkageSingle
)

func (l Linkage) String() string {
	switch l {
	case LinkageWard:
		return "ward"
	case LinkageComplete:
		return "complete"
	case LinkageAverage:
		return "average"
	case LinkageSingle:
		return "single"
	default:
		return fmt.Sprintf("Unknown(%d)", int(l))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l Linkage) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// ParseLinkage maps a linkage name onto a Linkage.
func ParseLinkage(name string) (Linkage, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ward":
		return LinkageWard, nil
	case "complete":
		return LinkageComplete, nil
	case "average":
		return LinkageAverage, nil
	case "single":
		return LinkageSingle, nil
	default:
		return 0, fmt.Errorf("%w: unknown linkage %q", ErrInvalidAggloParams, name)
	}
}

// AffinityChoices are the affinities commonly swept for agglomerative clustering.
var AffinityChoices = []distance.Metric{distance.MetricEuclidean, distance.MetricCosine}

// LinkageChoices are the linkages commonly swept together with AffinityChoices.
var LinkageChoices = []Linkage{LinkageComplete, LinkageAverage, LinkageSingle}

// AggloParams configures agglomerative clustering.
type AggloParams struct {
	Affinity distance.Metric
	Linkage  Linkage
}

// Validate checks that the affinity/linkage pair is supported.
// Ward linkage is only defined for euclidean affinity.
func (p AggloParams) Validate() error {
	switch p.Affinity {
	case distance.MetricEuclidean, distance.MetricManhattan, distance.MetricCosine:
	default:
		return fmt.Errorf("%w: affinity %s", ErrInvalidAggloParams, p.Affinity)
	}
	switch p.Linkage {
	case LinkageWard:
		if p.Affinity != distance.MetricEuclidean {
			return fmt.Errorf("%w: ward linkage requires euclidean affinity, got %s", ErrInvalidAggloParams, p.Affinity)
		}
	case LinkageComplete, LinkageAverage, LinkageSingle:
	default:
		return fmt.Errorf("%w: linkage %s", ErrInvalidAggloParams, p.Linkage)
	}
	return nil
}
