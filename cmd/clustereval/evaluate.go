package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/hupe1980/clustereval/archive"
	"github.com/hupe1980/clustereval/cluster"
	"github.com/spf13/cobra"
)

type evaluateFlags struct {
	k         int
	seed      int64
	algorithm string
}

func newEvaluateCmd(a *app) *cobra.Command {
	var flags evaluateFlags

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Fit the configured algorithm and score it against the label column",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			exp, err := a.experiment()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("algorithm") {
				exp.Algorithm = flags.algorithm
			}
			k := exp.K
			if flags.k > 0 {
				k = flags.k
			}
			if k < 1 {
				return errors.New("number of clusters is not set: use --k or k in the config")
			}
			seed := exp.Seed
			if cmd.Flags().Changed("seed") {
				seed = flags.seed
			}

			ds, err := a.loadDataset(exp)
			if err != nil {
				return err
			}
			if ds.Labels == nil {
				return errors.New("evaluate needs a label column: set dataset.label in the config")
			}
			cfg, err := exp.ClusterConfig(k, seed, ds)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			arc, err := a.openArchive(ctx, exp.Archive)
			if err != nil {
				return err
			}

			res, err := a.evaluator(exp, arc).Evaluate(ctx, ds.X, ds.Labels, cfg)
			if err != nil {
				return err
			}
			return printReport(cmd.OutOrStdout(), res.Report)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&flags.k, "k", "k", 0, "Number of clusters (overrides the config)")
	f.Int64Var(&flags.seed, "seed", 0, "Random seed (overrides the config)")
	f.StringVarP(&flags.algorithm, "algorithm", "a", "", "Algorithm: "+algorithmNames())
	return cmd
}

func algorithmNames() string {
	var s string
	for i, algo := range cluster.Algorithms() {
		if i > 0 {
			s += ", "
		}
		s += algo.String()
	}
	return s
}

func printReport(w io.Writer, r *archive.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "run\t%s\n", r.ID)
	fmt.Fprintf(tw, "experiment\t%s\n", r.Experiment)
	fmt.Fprintf(tw, "algorithm\t%s\n", r.Algorithm)
	fmt.Fprintf(tw, "n_clusters\t%d\n", r.K)
	fmt.Fprintf(tw, "seed\t%d\n", r.Seed)
	fmt.Fprintf(tw, "created\t%s\n", r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"))
	for _, key := range r.Metrics.Keys() {
		fmt.Fprintf(tw, "%s\t%.4f\n", key, r.Metrics[key])
	}
	if len(r.Sweep) > 0 {
		fmt.Fprintf(tw, "\nk\tsilhouette\tinertia\n")
		for _, p := range r.Sweep {
			fmt.Fprintf(tw, "%d\t%.4f\t%.4f\n", p.K, p.Silhouette, p.Inertia)
		}
	}
	return tw.Flush()
}
