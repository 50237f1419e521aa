// Package analysis sweeps candidate cluster counts.
//
// Silhouette fits one model per k and scores it with the distance metric the
// selector pairs with the algorithm. Elbow records the inertia per k. Both
// sweeps fit concurrently and return results sorted by k.
package analysis
