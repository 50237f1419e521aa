package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/hupe1980/clustereval/cluster"
)

// Record keys.
const (
	KeyARI        = "ars"
	KeyPurity     = "purity"
	KeyDB         = "db"
	KeyFMeasure   = "f-measure"
	KeySilhouette = "silhouette"
)

// Record maps score names to values. KeyARI, KeyPurity and KeyDB are always
// present; KeyFMeasure and KeySilhouette are optional.
type Record map[string]float64

// Keys returns the record keys in a stable order: the fixed keys first, then
// any others alphabetically.
func (r Record) Keys() []string {
	order := []string{KeyARI, KeyPurity, KeyDB, KeyFMeasure, KeySilhouette}
	keys := make([]string, 0, len(r))
	for _, k := range order {
		if _, ok := r[k]; ok {
			keys = append(keys, k)
		}
	}
	var rest []string
	for k := range r {
		if !slices.Contains(order, k) {
			rest = append(rest, k)
		}
	}
	slices.Sort(rest)
	return append(keys, rest...)
}

type options struct {
	algorithm *cluster.Algorithm
	logger    *slog.Logger
}

// Option configures Compute.
type Option func(*options)

// WithAlgorithm adds the silhouette score, measured with the distance
// conventionally paired with a.
func WithAlgorithm(a cluster.Algorithm) Option {
	return func(o *options) {
		o.algorithm = &a
	}
}

// WithLogger sets the logger used for warnings. Nil keeps the default,
// which discards output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Compute scores yPred against yTrue and the feature matrix X.
//
// The F-measure is binary when yTrue has exactly two categories and
// micro-averaged when it has more. The positive class is 1 when it is one of
// the two categories, otherwise the larger one. With fewer than
// two categories the key is left out and a warning is logged.
func Compute(yTrue, yPred []int, X [][]float64, optFns ...Option) (Record, error) {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, fn := range optFns {
		fn(&o)
	}

	if X == nil {
		return nil, ErrMissingFeatures
	}
	if err := checkLengths("X", len(yTrue), len(X)); err != nil {
		return nil, err
	}
	if err := checkFeatures(X); err != nil {
		return nil, err
	}

	c, err := NewContingency(yTrue, yPred)
	if err != nil {
		return nil, err
	}

	db, err := DaviesBouldin(X, yPred)
	if err != nil {
		return nil, fmt.Errorf("davies-bouldin: %w", err)
	}

	rec := Record{
		KeyARI:    c.AdjustedRandIndex(),
		KeyPurity: c.Purity(),
		KeyDB:     db,
	}

	if categories := c.Categories; len(categories) < 2 {
		o.logger.LogAttrs(context.Background(), slog.LevelWarn, "f-measure skipped",
			slog.Int("categories", len(categories)),
		)
	} else {
		reconciled, _, err := Reconcile(yTrue, yPred)
		if err != nil {
			return nil, fmt.Errorf("f-measure: %w", err)
		}
		var f float64
		if len(categories) == 2 {
			f, err = F1Binary(yTrue, reconciled, positiveClass(categories))
		} else {
			f, err = F1Micro(yTrue, reconciled)
		}
		if err != nil {
			return nil, err
		}
		rec[KeyFMeasure] = f
	}

	if o.algorithm != nil {
		s, err := SilhouetteScore(X, yPred, o.algorithm.SilhouetteMetric())
		if err != nil {
			return nil, fmt.Errorf("silhouette: %w", err)
		}
		rec[KeySilhouette] = s
	}

	return rec, nil
}

// positiveClass picks the positive label of a two-category problem.
func positiveClass(categories []int) int {
	if slices.Contains(categories, 1) {
		return 1
	}
	return categories[1]
}
