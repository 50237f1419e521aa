// Package testutil provides testing utilities for clustereval.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random source for generating labelled synthetic
// datasets with known cluster structure.
//
// # Synthetic Blobs
//
//	rng := testutil.NewRNG(seed)
//	X, y := rng.Blobs([][]float64{{0, 0}, {10, 10}}, 20, 0.5)
//
// # Categorical Data
//
//	X, y := rng.CategoricalBlobs(3, 30, 5, 0.1)
package testutil
