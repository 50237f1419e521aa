package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/hupe1980/clustereval/archive"
	"github.com/hupe1980/clustereval/cluster"
	"github.com/hupe1980/clustereval/config"
	"github.com/hupe1980/clustereval/dataset"
	"github.com/hupe1980/clustereval/visualize"
	"github.com/spf13/cobra"
)

type sweepFlags struct {
	ks     []int
	seed   int64
	output string
}

func (f *sweepFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.IntSliceVar(&f.ks, "ks", nil, "Candidate cluster counts (overrides the config)")
	fl.Int64Var(&f.seed, "seed", 0, "Random seed (overrides the config)")
	fl.StringVarP(&f.output, "output", "o", "", "HTML output file (overrides the config)")
}

// resolve merges the flags into the sweep section of the config.
func (f *sweepFlags) resolve(cmd *cobra.Command, s config.Sweep, defaultOutput string) (ks []int, seed int64, output string) {
	ks = s.Ks
	if len(f.ks) > 0 {
		ks = f.ks
	}
	if s.Seed != nil {
		seed = *s.Seed
	}
	if cmd.Flags().Changed("seed") {
		seed = f.seed
	}
	output = s.Output
	if f.output != "" {
		output = f.output
	}
	if output == "" {
		output = defaultOutput
	}
	return ks, seed, output
}

type sweepInput struct {
	exp *config.Experiment
	ds  *dataset.Dataset
	cfg cluster.Config
	arc *archive.Archive
}

func (a *app) prepareSweep(ctx context.Context, exp *config.Experiment, seed int64) (*sweepInput, error) {
	ds, err := a.loadDataset(exp)
	if err != nil {
		return nil, err
	}
	cfg, err := exp.ClusterConfig(0, seed, ds)
	if err != nil {
		return nil, err
	}
	arc, err := a.openArchive(ctx, exp.Archive)
	if err != nil {
		return nil, err
	}
	return &sweepInput{exp: exp, ds: ds, cfg: cfg, arc: arc}, nil
}

// saveSweep archives the sweep summary when an archive is configured.
func (a *app) saveSweep(ctx context.Context, in *sweepInput, points []archive.SweepPoint) error {
	if in.arc == nil {
		return nil
	}
	r := archive.NewReport(in.exp.Name, in.cfg, nil)
	r.Sweep = points
	blob, err := in.arc.Save(ctx, r)
	a.logger.WithRunID(r.ID).LogArchive(ctx, blob, err)
	return err
}

func writeFile(path string, render func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func newSilhouetteCmd(a *app) *cobra.Command {
	var flags sweepFlags

	cmd := &cobra.Command{
		Use:   "silhouette",
		Short: "Run a silhouette sweep and write an HTML report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			exp, err := a.experiment()
			if err != nil {
				return err
			}
			ks, seed, output := flags.resolve(cmd, exp.Silhouette, "silhouette.html")

			in, err := a.prepareSweep(ctx, exp, seed)
			if err != nil {
				return err
			}
			runs, err := a.evaluator(in.exp, in.arc).Silhouette(ctx, in.ds.X, in.cfg, ks)
			if err != nil {
				return err
			}

			points, proj, err := dataset.Project2D(in.ds.X)
			if err != nil {
				return err
			}
			err = writeFile(output, func(f *os.File) error {
				return visualize.SilhouettePage(f, runs, visualize.Projected{Points: points, Projection: proj})
			})
			if err != nil {
				return err
			}

			summary := make([]archive.SweepPoint, len(runs))
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "n_clusters\tsilhouette\n")
			for i, run := range runs {
				summary[i] = archive.SweepPoint{K: run.K, Silhouette: run.Average}
				fmt.Fprintf(tw, "%d\t%.4f\n", run.K, run.Average)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
			return a.saveSweep(ctx, in, summary)
		},
	}
	flags.register(cmd)
	return cmd
}

func newElbowCmd(a *app) *cobra.Command {
	var flags sweepFlags

	cmd := &cobra.Command{
		Use:   "elbow",
		Short: "Run an elbow sweep and write an HTML chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			exp, err := a.experiment()
			if err != nil {
				return err
			}
			ks, seed, output := flags.resolve(cmd, exp.Elbow, "elbow.html")

			in, err := a.prepareSweep(ctx, exp, seed)
			if err != nil {
				return err
			}
			points, err := a.evaluator(in.exp, in.arc).Elbow(ctx, in.ds.X, in.cfg, ks)
			if err != nil {
				return err
			}

			title := fmt.Sprintf("Elbow method for %s", in.cfg.Algorithm)
			err = writeFile(output, func(f *os.File) error {
				return visualize.ElbowChart(f, points, title)
			})
			if err != nil {
				return err
			}

			summary := make([]archive.SweepPoint, len(points))
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "n_clusters\tinertia\n")
			for i, p := range points {
				summary[i] = archive.SweepPoint{K: p.K, Inertia: p.Inertia}
				fmt.Fprintf(tw, "%d\t%.4f\n", p.K, p.Inertia)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
			return a.saveSweep(ctx, in, summary)
		},
	}
	flags.register(cmd)
	return cmd
}
