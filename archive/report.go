package archive

import (
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/clustereval/cluster"
	"github.com/hupe1980/clustereval/metrics"
)

// SweepPoint summarizes one candidate k of a silhouette or elbow sweep.
type SweepPoint struct {
	K          int     `json:"k" yaml:"k"`
	Silhouette float64 `json:"silhouette,omitempty" yaml:"silhouette,omitempty"`
	Inertia    float64 `json:"inertia,omitempty" yaml:"inertia,omitempty"`
}

// Report is one persisted evaluation run.
type Report struct {
	ID         string            `json:"id" yaml:"id"`
	Experiment string            `json:"experiment" yaml:"experiment"`
	Algorithm  cluster.Algorithm `json:"algorithm" yaml:"algorithm"`
	K          int               `json:"k" yaml:"k"`
	Seed       int64             `json:"seed" yaml:"seed"`
	CreatedAt  time.Time         `json:"created_at" yaml:"created_at"`
	Metrics    metrics.Record    `json:"metrics" yaml:"metrics"`
	Sweep      []SweepPoint      `json:"sweep,omitempty" yaml:"sweep,omitempty"`
}

// NewReport returns a report with a fresh run ID and the current time.
func NewReport(experiment string, cfg cluster.Config, rec metrics.Record) *Report {
	return &Report{
		ID:         uuid.NewString(),
		Experiment: experiment,
		Algorithm:  cfg.Algorithm,
		K:          cfg.NClusters,
		Seed:       cfg.RandomSeed,
		CreatedAt:  time.Now().UTC(),
		Metrics:    rec,
	}
}
