package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/clustereval"
	"github.com/hupe1980/clustereval/archive"
	"github.com/hupe1980/clustereval/codec"
	"github.com/hupe1980/clustereval/config"
	"github.com/hupe1980/clustereval/dataset"
	"github.com/hupe1980/clustereval/internal/compress"
)

func (a *app) experiment() (*config.Experiment, error) {
	if a.flags.configPath == "" {
		return nil, errors.New("--config is required")
	}
	exp, err := config.LoadFile(a.flags.configPath)
	if err != nil {
		return nil, err
	}
	if a.flags.archiveURL != "" {
		if exp.Archive == nil {
			exp.Archive = &config.Archive{}
		}
		exp.Archive.URL = a.flags.archiveURL
		exp.ApplyDefaults()
	}
	if a.flags.ddbTable != "" && exp.Archive != nil {
		exp.Archive.DDBTable = a.flags.ddbTable
	}
	return exp, nil
}

func (a *app) loadDataset(exp *config.Experiment) (*dataset.Dataset, error) {
	if exp.Dataset.Path == "" {
		return nil, errors.New("experiment has no dataset path")
	}
	opts := append(exp.DatasetOptions(), dataset.WithLogger(a.logger.Logger))
	return dataset.Load(exp.Dataset.Path, opts...)
}

// openArchive returns nil when no archive is configured.
func (a *app) openArchive(ctx context.Context, cfg *config.Archive) (*archive.Archive, error) {
	if cfg == nil || cfg.URL == "" {
		return nil, nil
	}
	c, ok := codec.ByName(cfg.Codec)
	if !ok {
		return nil, fmt.Errorf("unknown codec %q", cfg.Codec)
	}
	alg, err := compress.Parse(cfg.Compression)
	if err != nil {
		return nil, err
	}
	store, err := archive.OpenStore(ctx, cfg.URL, archive.StoreOptions{DDBTable: cfg.DDBTable, Region: cfg.Region})
	if err != nil {
		return nil, err
	}
	return archive.New(store,
		archive.WithCodec(c),
		archive.WithCompression(alg),
		archive.WithIOLimit(cfg.IOLimitBytesPerSec),
		archive.WithLogger(a.logger.Logger),
	), nil
}

// archiveFromFlags opens the archive named by --archive, falling back to the
// experiment config when --config is set.
func (a *app) archiveFromFlags(ctx context.Context) (*archive.Archive, error) {
	var cfg *config.Archive
	switch {
	case a.flags.configPath != "":
		exp, err := a.experiment()
		if err != nil {
			return nil, err
		}
		cfg = exp.Archive
	case a.flags.archiveURL != "":
		cfg = &config.Archive{
			URL:         a.flags.archiveURL,
			Codec:       config.DefaultCodec,
			Compression: config.DefaultCompression,
			DDBTable:    a.flags.ddbTable,
		}
	}
	arc, err := a.openArchive(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if arc == nil {
		return nil, errors.New("no archive configured: pass --archive or set archive.url in the config")
	}
	return arc, nil
}

func (a *app) evaluator(exp *config.Experiment, arc *archive.Archive) *clustereval.Evaluator {
	opts := []clustereval.Option{
		clustereval.WithExperiment(exp.Name),
		clustereval.WithLogger(a.logger),
		clustereval.WithMetricsCollector(a.collector),
		clustereval.WithWorkers(exp.Workers),
		clustereval.WithLimits(exp.Workers, exp.MemoryLimitBytes),
	}
	if arc != nil {
		opts = append(opts, clustereval.WithArchive(arc))
	}
	return clustereval.New(opts...)
}
