// Package clustereval scores clusterings against ground-truth labels.
//
// The Evaluator fits one of five clusterers (k-means, k-modes, k-prototypes,
// fuzzy c-means, agglomerative), reconciles the cluster ids with the true
// categories and reports:
//
//   - ars: adjusted Rand index
//   - purity
//   - db: Davies-Bouldin index
//   - f-measure: binary F1 for two categories, micro F1 otherwise
//   - silhouette: mean silhouette with the distance paired to the algorithm
//
// # Quick Start
//
//	ev := clustereval.New(clustereval.WithLogger(clustereval.NewTextLogger(slog.LevelInfo)))
//	res, err := ev.Evaluate(ctx, X, yTrue, cluster.Config{
//	    Algorithm: cluster.KModes,
//	    NClusters: 3,
//	})
//	fmt.Println(res.Report.Metrics)
//
// # Sweeps
//
// Silhouette and Elbow fit one model per candidate k in parallel. Their
// results feed the HTML charts of the visualize package.
//
// # Archiving
//
// WithArchive saves every evaluation as a compressed report in a blob store
// (memory, local directory, MinIO, or S3 with a DynamoDB commit pointer).
//
// # Observability
//
// WithLogger attaches a slog-based Logger, WithMetricsCollector a
// MetricsCollector such as BasicMetricsCollector or prom.Collector.
package clustereval
