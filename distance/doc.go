// Package distance provides the distance functions used for clustering and
// for scoring clusterings.
//
// Kernels operate on float64 feature rows and are backed by gonum/floats
// where a kernel exists there.
//
// # Supported Metrics
//
//   - MetricEuclidean: L2 distance (default)
//   - MetricManhattan: L1 distance
//   - MetricSquaredEuclidean: squared L2 distance
//   - MetricCosine: 1 - cosine similarity
//   - MetricHamming: number of mismatching attributes
//
// # Usage
//
//	fn, err := distance.Provider(distance.MetricManhattan)
//	d := fn(a, b)
package distance
