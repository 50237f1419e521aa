// Package cluster implements the clustering algorithms scored by this module
// and the selector that configures them.
//
// Five algorithms are supported through the closed Algorithm enum:
//
//   - KMeans: Lloyd's algorithm on numeric features
//   - KModes: Huang's k-modes on integer-coded categorical features
//   - KPrototypes: mixed numeric and categorical features
//   - Fuzzy: fuzzy c-means with soft memberships
//   - Agglomerative: bottom-up merging with single, complete, average or ward linkage
//
// Select returns an unfitted model together with the distance metric that is
// conventionally paired with the algorithm for silhouette scoring:
//
//	model, metric, err := cluster.Select(cluster.Config{
//	    Algorithm:  cluster.KMeans,
//	    NClusters:  3,
//	    RandomSeed: 10,
//	})
//	if err != nil {
//	    return err
//	}
//	if err := model.Fit(ctx, X); err != nil {
//	    return err
//	}
//	labels := model.Labels()
//
// All randomness is drawn from a PCG source seeded with Config.RandomSeed, so
// fits are reproducible.
package cluster
