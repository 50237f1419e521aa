package prom

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "clustereval"

// Collector records evaluator operations as Prometheus metrics.
type Collector struct {
	fitLatency     *prometheus.HistogramVec
	evaluations    *prometheus.CounterVec
	scores         *prometheus.GaugeVec
	sweepLatency   *prometheus.HistogramVec
	sweepCandidate *prometheus.CounterVec
	archiveLatency *prometheus.HistogramVec
}

// NewCollector creates a Collector and registers its metrics with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := &Collector{
		fitLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fit_duration_seconds",
			Help:      "Latency of clusterer fits",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"algorithm", "status"}),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Total metric computations",
		}, []string{"algorithm", "status"}),
		scores: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "score",
			Help:      "Last computed clustering score",
		}, []string{"algorithm", "metric"}),
		sweepLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sweep_duration_seconds",
			Help:      "Latency of silhouette and elbow sweeps",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 10),
		}, []string{"kind", "status"}),
		sweepCandidate: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_candidates_total",
			Help:      "Total candidate cluster counts tried by sweeps",
		}, []string{"kind"}),
		archiveLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "archive_duration_seconds",
			Help:      "Latency of archive operations",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op", "status"}),
	}

	reg.MustRegister(
		c.fitLatency,
		c.evaluations,
		c.scores,
		c.sweepLatency,
		c.sweepCandidate,
		c.archiveLatency,
	)
	return c
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordFit implements clustereval.MetricsCollector.
func (c *Collector) RecordFit(algorithm string, _ int, d time.Duration, err error) {
	c.fitLatency.WithLabelValues(algorithm, status(err)).Observe(d.Seconds())
}

// RecordEvaluate implements clustereval.MetricsCollector.
func (c *Collector) RecordEvaluate(algorithm string, scores map[string]float64, _ time.Duration, err error) {
	c.evaluations.WithLabelValues(algorithm, status(err)).Inc()
	for metric, v := range scores {
		c.scores.WithLabelValues(algorithm, metric).Set(v)
	}
}

// RecordSweep implements clustereval.MetricsCollector.
func (c *Collector) RecordSweep(kind string, candidates int, d time.Duration, err error) {
	c.sweepLatency.WithLabelValues(kind, status(err)).Observe(d.Seconds())
	c.sweepCandidate.WithLabelValues(kind).Add(float64(candidates))
}

// RecordArchive implements clustereval.MetricsCollector.
func (c *Collector) RecordArchive(op string, d time.Duration, err error) {
	c.archiveLatency.WithLabelValues(op, status(err)).Observe(d.Seconds())
}

// WriteTextfile writes the metrics gathered by g in the text exposition
// format, for the node exporter textfile collector. The file is replaced
// atomically.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
