// Package metrics scores a clustering against ground-truth labels.
//
// The primitives follow the scikit-learn definitions:
//
//   - AdjustedRandIndex: pair-counting agreement corrected for chance.
//   - Purity: the share of rows that fall in the majority category of their cluster.
//   - DaviesBouldin: average worst-case ratio of cluster scatter to separation.
//   - SilhouetteSamples and SilhouetteScore: per-row cohesion against separation.
//   - F1Binary and F1Micro: F-measure over reconciled labels.
//
// Reconcile relabels predicted clusters with the true category they mostly
// cover, so label-sensitive scores such as the F-measure can be computed.
// Compute aggregates everything into a Record:
//
//	rec, err := metrics.Compute(yTrue, yPred, X, metrics.WithAlgorithm(cluster.KMeans))
//	if err != nil {
//		return err
//	}
//	fmt.Println(rec[metrics.KeyARI], rec[metrics.KeyPurity])
package metrics
