// Package prom implements clustereval.MetricsCollector with Prometheus
// histograms and counters.
//
//	reg := prometheus.NewRegistry()
//	ev := clustereval.New(clustereval.WithMetricsCollector(prom.NewCollector(reg)))
//	...
//	_ = prom.WriteTextfile("/var/lib/node_exporter/clustereval.prom", reg)
package prom
