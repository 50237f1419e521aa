package config

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/hupe1980/clustereval/cluster"
	"github.com/hupe1980/clustereval/codec"
	"github.com/hupe1980/clustereval/dataset"
	"github.com/hupe1980/clustereval/distance"
	"github.com/hupe1980/clustereval/internal/compress"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid experiment config")

// Default sweep settings.
var (
	DefaultSilhouetteKs = []int{2, 3, 4}
	DefaultElbowKs      = []int{2, 3, 4, 5}
)

const (
	DefaultSilhouetteSeed = 10
	DefaultElbowSeed      = 42
	DefaultCodec          = "go-json"
	DefaultCompression    = "zstd"
)

// Experiment is one evaluation setup.
type Experiment struct {
	Name    string  `yaml:"name"`
	Dataset Dataset `yaml:"dataset"`

	// Algorithm is one of kmeans, kmodes, kproto, fuzzy, agglo.
	Algorithm string `yaml:"algorithm"`
	K         int    `yaml:"k"`
	Seed      int64  `yaml:"seed"`
	MaxIter   int    `yaml:"max_iter"`

	// Agglomerative is required when Algorithm is agglo.
	Agglomerative *Agglomerative `yaml:"agglomerative"`

	Silhouette Sweep `yaml:"silhouette"`
	Elbow      Sweep `yaml:"elbow"`

	// Workers bounds concurrent fits. Zero means one per candidate k.
	Workers          int   `yaml:"workers"`
	MemoryLimitBytes int64 `yaml:"memory_limit_bytes"`

	Archive *Archive `yaml:"archive"`
}

// Dataset describes the CSV input.
type Dataset struct {
	Path        string   `yaml:"path"`
	Columns     []string `yaml:"columns"`
	Label       string   `yaml:"label"`
	Categorical []string `yaml:"categorical"`
	Comma       string   `yaml:"comma"`
}

// Agglomerative holds agglomerative parameters by name.
type Agglomerative struct {
	Affinity string `yaml:"affinity"`
	Linkage  string `yaml:"linkage"`
}

// Sweep configures a silhouette or elbow sweep.
type Sweep struct {
	Ks     []int  `yaml:"ks"`
	Seed   *int64 `yaml:"seed"`
	Output string `yaml:"output"`
}

// Archive configures report persistence.
type Archive struct {
	URL                string `yaml:"url"`
	Codec              string `yaml:"codec"`
	Compression        string `yaml:"compression"`
	DDBTable           string `yaml:"ddb_table"`
	Region             string `yaml:"region"`
	IOLimitBytesPerSec int64  `yaml:"io_limit_bytes_per_sec"`
}

// LoadFile reads and validates an experiment file.
func LoadFile(path string) (*Experiment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read experiment: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML, applies defaults and validates the result.
func Parse(data []byte) (*Experiment, error) {
	var e Experiment
	if err := yaml.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("parse experiment yaml: %w", err)
	}
	e.ApplyDefaults()
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return &e, nil
}

func int64Ptr(v int64) *int64 { return &v }

// ApplyDefaults fills unset fields.
func (e *Experiment) ApplyDefaults() {
	if e.Name == "" {
		e.Name = "default"
	}
	if e.Algorithm == "" {
		e.Algorithm = cluster.KMeans.String()
	}
	if len(e.Silhouette.Ks) == 0 {
		e.Silhouette.Ks = append([]int(nil), DefaultSilhouetteKs...)
	}
	if e.Silhouette.Seed == nil {
		e.Silhouette.Seed = int64Ptr(DefaultSilhouetteSeed)
	}
	if len(e.Elbow.Ks) == 0 {
		e.Elbow.Ks = append([]int(nil), DefaultElbowKs...)
	}
	if e.Elbow.Seed == nil {
		e.Elbow.Seed = int64Ptr(DefaultElbowSeed)
	}
	if e.Archive != nil {
		if e.Archive.Codec == "" {
			e.Archive.Codec = DefaultCodec
		}
		if e.Archive.Compression == "" {
			e.Archive.Compression = DefaultCompression
		}
	}
}

// Validate checks names and ranges.
func (e *Experiment) Validate() error {
	if _, err := cluster.ParseAlgorithm(e.Algorithm); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if e.K < 0 {
		return fmt.Errorf("%w: k must not be negative, got %d", ErrInvalid, e.K)
	}
	if e.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalid, e.Workers)
	}
	if e.Agglomerative != nil {
		if _, err := e.Agglomerative.Params(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	}
	if err := e.Silhouette.validate("silhouette"); err != nil {
		return err
	}
	if err := e.Elbow.validate("elbow"); err != nil {
		return err
	}
	if e.Dataset.Comma != "" && utf8.RuneCountInString(e.Dataset.Comma) != 1 {
		return fmt.Errorf("%w: comma must be a single character, got %q", ErrInvalid, e.Dataset.Comma)
	}
	if a := e.Archive; a != nil {
		if a.URL == "" {
			return fmt.Errorf("%w: archive url is required", ErrInvalid)
		}
		if _, ok := codec.ByName(a.Codec); !ok {
			return fmt.Errorf("%w: unknown codec %q", ErrInvalid, a.Codec)
		}
		if _, err := compress.Parse(a.Compression); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	}
	return nil
}

func (s Sweep) validate(name string) error {
	for _, k := range s.Ks {
		if k < 2 {
			return fmt.Errorf("%w: %s sweep k must be at least 2, got %d", ErrInvalid, name, k)
		}
	}
	return nil
}

// Params converts the named affinity and linkage.
func (a *Agglomerative) Params() (cluster.AggloParams, error) {
	affinity := distance.MetricEuclidean
	if a.Affinity != "" {
		m, err := distance.ParseMetric(a.Affinity)
		if err != nil {
			return cluster.AggloParams{}, err
		}
		affinity = m
	}
	linkage := cluster.LinkageWard
	if a.Linkage != "" {
		l, err := cluster.ParseLinkage(a.Linkage)
		if err != nil {
			return cluster.AggloParams{}, err
		}
		linkage = l
	}
	p := cluster.AggloParams{Affinity: affinity, Linkage: linkage}
	return p, p.Validate()
}

// ClusterConfig returns the selector config for k clusters and seed.
// Categorical column names are resolved against ds.
func (e *Experiment) ClusterConfig(k int, seed int64, ds *dataset.Dataset) (cluster.Config, error) {
	algo, err := cluster.ParseAlgorithm(e.Algorithm)
	if err != nil {
		return cluster.Config{}, err
	}
	cfg := cluster.Config{
		Algorithm:  algo,
		NClusters:  k,
		RandomSeed: seed,
		MaxIter:    e.MaxIter,
	}
	if ds != nil {
		cfg.CategoricalFeatures = append([]int(nil), ds.Categorical...)
	}
	if algo == cluster.Agglomerative {
		agg := e.Agglomerative
		if agg == nil {
			agg = &Agglomerative{}
		}
		p, err := agg.Params()
		if err != nil {
			return cluster.Config{}, err
		}
		cfg.Agglomerative = &p
	}
	return cfg, nil
}

// DatasetOptions translates the dataset section into loader options.
func (e *Experiment) DatasetOptions() []dataset.Option {
	var opts []dataset.Option
	if len(e.Dataset.Columns) > 0 {
		opts = append(opts, dataset.WithColumns(e.Dataset.Columns...))
	}
	if e.Dataset.Label != "" {
		opts = append(opts, dataset.WithLabelColumn(e.Dataset.Label))
	}
	if len(e.Dataset.Categorical) > 0 {
		opts = append(opts, dataset.WithCategorical(e.Dataset.Categorical...))
	}
	if e.Dataset.Comma != "" {
		r, _ := utf8.DecodeRuneInString(e.Dataset.Comma)
		opts = append(opts, dataset.WithComma(r))
	}
	return opts
}
