package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/hupe1980/clustereval"
	"github.com/hupe1980/clustereval/prom"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

type globalFlags struct {
	configPath      string
	logLevel        string
	logFormat       string
	metricsTextfile string
	archiveURL      string
	ddbTable        string
}

// app carries the state shared by all subcommands of one invocation.
type app struct {
	flags     globalFlags
	logger    *clustereval.Logger
	registry  *prometheus.Registry
	collector *prom.Collector
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "clustereval",
		Short: "Evaluate clustering algorithms against ground-truth labels",
		Long: "clustereval fits k-means, k-modes, k-prototypes, fuzzy c-means or\n" +
			"agglomerative clustering and reports ARI, purity, Davies-Bouldin,\n" +
			"F-measure and silhouette scores.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a.flags.metricsTextfile == "" {
				return nil
			}
			if err := prom.WriteTextfile(a.flags.metricsTextfile, a.registry); err != nil {
				return fmt.Errorf("write metrics textfile: %w", err)
			}
			return nil
		},
	}

	f := root.PersistentFlags()
	f.StringVarP(&a.flags.configPath, "config", "c", "", "Experiment YAML file")
	f.StringVar(&a.flags.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	f.StringVar(&a.flags.logFormat, "log-format", "text", "Log format: text or json")
	f.StringVar(&a.flags.metricsTextfile, "metrics-textfile", "", "Write Prometheus metrics to this file on exit")
	f.StringVar(&a.flags.archiveURL, "archive", "", "Archive URL (mem://, file:///dir, s3://bucket/prefix, minio://host/bucket/prefix); overrides the config")
	f.StringVar(&a.flags.ddbTable, "ddb-table", "", "DynamoDB table holding the commit pointer for s3:// archives")

	root.AddCommand(newEvaluateCmd(a))
	root.AddCommand(newSilhouetteCmd(a))
	root.AddCommand(newElbowCmd(a))
	root.AddCommand(newReportsCmd(a))
	return root
}

func (a *app) init(w io.Writer) error {
	level, err := parseLevel(a.flags.logLevel)
	if err != nil {
		return err
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(a.flags.logFormat) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "text", "":
		handler = slog.NewTextHandler(w, opts)
	default:
		return fmt.Errorf("unknown log format %q", a.flags.logFormat)
	}
	a.logger = clustereval.NewLogger(handler)

	a.registry = prometheus.NewRegistry()
	a.collector = prom.NewCollector(a.registry)
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}
