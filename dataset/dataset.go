package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/hupe1980/clustereval/internal/mmap"
)

var (
	// ErrNoHeader is returned for input without a header record.
	ErrNoHeader = errors.New("dataset: missing header")

	// ErrUnknownColumn is returned when an option names a column the header lacks.
	ErrUnknownColumn = errors.New("dataset: unknown column")

	// ErrNoFeatures is returned when no feature column remains.
	ErrNoFeatures = errors.New("dataset: no feature columns")
)

// Dataset is a feature matrix with optional ground-truth labels.
type Dataset struct {
	// Columns names the columns of X.
	Columns []string

	// X holds one row per record.
	X [][]float64

	// Categorical lists the indices of the integer-coded columns of X.
	Categorical []int

	// Encoders holds the encoder of each categorical column, keyed by name.
	Encoders map[string]*Encoder

	// Labels holds the encoded label column, or nil when none was configured.
	Labels []int

	// LabelEncoder decodes Labels.
	LabelEncoder *Encoder
}

// Rows returns the number of records.
func (d *Dataset) Rows() int { return len(d.X) }

// LabelNames returns the decoded label of each row.
func (d *Dataset) LabelNames() []string {
	if d.LabelEncoder == nil {
		return nil
	}
	out := make([]string, len(d.Labels))
	for i, l := range d.Labels {
		out[i], _ = d.LabelEncoder.Decode(l)
	}
	return out
}

type options struct {
	columns     []string
	label       string
	categorical []string
	comma       rune
	logger      *slog.Logger
}

// Option configures Load and Read.
type Option func(*options)

// WithColumns restricts the features to the named columns, in that order.
// By default every column except the label is a feature.
func WithColumns(names ...string) Option {
	return func(o *options) { o.columns = names }
}

// WithLabelColumn names the ground-truth column.
func WithLabelColumn(name string) Option {
	return func(o *options) { o.label = name }
}

// WithCategorical names feature columns to integer-code instead of parsing.
func WithCategorical(names ...string) Option {
	return func(o *options) { o.categorical = names }
}

// WithComma sets the field delimiter. The default is ','.
func WithComma(r rune) Option {
	return func(o *options) { o.comma = r }
}

// WithLogger sets the logger for Load. Logs are discarded by default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Load reads a CSV file through a read-only memory mapping.
func Load(path string, optFns ...Option) (*Dataset, error) {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, fn := range optFns {
		fn(&o)
	}

	f, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	adviseSequential(f, path, o.logger)

	ds, err := Read(f.Reader(), optFns...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// adviseSequential hints a front-to-back scan. Failures only cost read-ahead.
func adviseSequential(f *mmap.File, path string, logger *slog.Logger) {
	if err := f.Advise(mmap.AccessSequential); err != nil {
		logger.Debug("mmap advise failed", slog.String("path", path), slog.Any("error", err))
	}
}

// Read parses CSV from r.
func Read(r io.Reader, optFns ...Option) (*Dataset, error) {
	o := options{comma: ','}
	for _, fn := range optFns {
		fn(&o)
	}

	cr := csv.NewReader(r)
	cr.Comma = o.comma
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, err
	}
	header = slices.Clone(header)
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[h] = i
	}
	lookup := func(name string) (int, error) {
		i, ok := pos[name]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
		}
		return i, nil
	}

	labelIdx := -1
	if o.label != "" {
		if labelIdx, err = lookup(o.label); err != nil {
			return nil, err
		}
	}

	features := o.columns
	if len(features) == 0 {
		for _, h := range header {
			if h != o.label {
				features = append(features, h)
			}
		}
	}
	if len(features) == 0 {
		return nil, ErrNoFeatures
	}

	src := make([]int, len(features))
	for j, name := range features {
		if src[j], err = lookup(name); err != nil {
			return nil, err
		}
	}

	ds := &Dataset{
		Columns:  slices.Clone(features),
		Encoders: make(map[string]*Encoder),
	}
	encoders := make([]*Encoder, len(features))
	for _, name := range o.categorical {
		j := slices.Index(features, name)
		if j < 0 {
			return nil, fmt.Errorf("%w: categorical %q is not a feature", ErrUnknownColumn, name)
		}
		if encoders[j] == nil {
			encoders[j] = NewEncoder()
			ds.Encoders[name] = encoders[j]
			ds.Categorical = append(ds.Categorical, j)
		}
	}
	slices.Sort(ds.Categorical)

	if labelIdx >= 0 {
		ds.LabelEncoder = NewEncoder()
	}

	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		row := make([]float64, len(features))
		for j, i := range src {
			field := strings.TrimSpace(record[i])
			if enc := encoders[j]; enc != nil {
				row[j] = float64(enc.Encode(field))
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %q: %w", line, features[j], err)
			}
			row[j] = v
		}
		ds.X = append(ds.X, row)

		if labelIdx >= 0 {
			ds.Labels = append(ds.Labels, ds.LabelEncoder.Encode(strings.TrimSpace(record[labelIdx])))
		}
	}

	return ds, nil
}
