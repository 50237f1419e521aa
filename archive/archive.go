package archive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/hupe1980/clustereval/blobstore"
	"github.com/hupe1980/clustereval/codec"
	"github.com/hupe1980/clustereval/internal/compress"
	"github.com/hupe1980/clustereval/internal/resource"
)

const (
	reportsPrefix = "reports/"
	latestBlob    = "LATEST"

	// LatestID is accepted by Load in place of a report ID.
	LatestID = "latest"

	commitRetries = 3
)

// ErrReportNotFound is returned when no report matches an ID.
var ErrReportNotFound = errors.New("report not found")

// Archive saves and loads reports.
type Archive struct {
	store       blobstore.Store
	codec       codec.Codec
	compression compress.Algorithm
	rc          *resource.Controller
	logger      *slog.Logger
}

// Option configures an Archive.
type Option func(*Archive)

// WithCodec sets the codec used by Save. Load picks the codec from the blob
// name, so archives may mix codecs.
func WithCodec(c codec.Codec) Option {
	return func(a *Archive) { a.codec = c }
}

// WithCompression sets the frame compression used by Save.
func WithCompression(alg compress.Algorithm) Option {
	return func(a *Archive) { a.compression = alg }
}

// WithIOLimit caps archive throughput in bytes per second.
func WithIOLimit(bytesPerSec int64) Option {
	return func(a *Archive) {
		if bytesPerSec > 0 {
			a.rc = resource.NewController(resource.Config{IOLimitBytesPerSec: bytesPerSec})
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Archive) { a.logger = l }
}

// New creates an archive on top of store.
func New(store blobstore.Store, opts ...Option) *Archive {
	a := &Archive{
		store:       store,
		codec:       codec.Default,
		compression: compress.Zstd,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func blobName(id string, c codec.Codec) string {
	return reportsPrefix + id + "." + c.Name()
}

// parseBlobName splits reports/<id>.<codec>.
func parseBlobName(name string) (id, codecName string, ok bool) {
	base := strings.TrimPrefix(name, reportsPrefix)
	if base == name {
		return "", "", false
	}
	dot := strings.IndexByte(base, '.')
	if dot <= 0 || dot == len(base)-1 {
		return "", "", false
	}
	return base[:dot], base[dot+1:], true
}

// Save writes r and moves the latest pointer to it. It returns the blob name.
func (a *Archive) Save(ctx context.Context, r *Report) (string, error) {
	if r.ID == "" {
		return "", errors.New("archive: report has no id")
	}
	start := time.Now()

	raw, err := a.codec.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("archive: encode report: %w", err)
	}
	frame, err := compress.Encode(raw, a.compression)
	if err != nil {
		return "", fmt.Errorf("archive: compress report: %w", err)
	}
	if err := a.rc.AcquireIO(ctx, len(frame)); err != nil {
		return "", err
	}

	name := blobName(r.ID, a.codec)
	if err := a.store.Put(ctx, name, frame); err != nil {
		return "", fmt.Errorf("archive: put %s: %w", name, err)
	}
	if err := a.setLatest(ctx, name); err != nil {
		return "", err
	}

	a.logger.DebugContext(ctx, "report archived",
		"run_id", r.ID,
		"blob", name,
		"raw_bytes", len(raw),
		"stored_bytes", len(frame),
		"duration", time.Since(start))
	return name, nil
}

func (a *Archive) setLatest(ctx context.Context, name string) error {
	c, ok := a.store.(blobstore.Committer)
	if !ok {
		if err := a.store.Put(ctx, latestBlob, []byte(name)); err != nil {
			return fmt.Errorf("archive: update latest pointer: %w", err)
		}
		return nil
	}

	var err error
	for range commitRetries {
		if _, err = c.Commit(ctx, name); !errors.Is(err, blobstore.ErrConcurrentModification) {
			break
		}
		a.logger.WarnContext(ctx, "latest pointer moved concurrently, retrying", "blob", name)
	}
	if err != nil {
		return fmt.Errorf("archive: commit latest pointer: %w", err)
	}
	return nil
}

func (a *Archive) latestName(ctx context.Context) (string, error) {
	if c, ok := a.store.(blobstore.Committer); ok {
		_, name, err := c.Head(ctx)
		if err != nil {
			return "", err
		}
		return name, nil
	}
	data, err := a.store.Get(ctx, latestBlob)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Latest loads the most recently saved report.
func (a *Archive) Latest(ctx context.Context) (*Report, error) {
	name, err := a.latestName(ctx)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return nil, fmt.Errorf("%w: archive is empty", ErrReportNotFound)
		}
		return nil, err
	}
	return a.loadBlob(ctx, name)
}

// Load reads the report with the given ID, or the latest one for LatestID.
func (a *Archive) Load(ctx context.Context, id string) (*Report, error) {
	if id == LatestID {
		return a.Latest(ctx)
	}

	names, err := a.store.List(ctx, reportsPrefix+id+".")
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrReportNotFound, id)
	}
	return a.loadBlob(ctx, names[0])
}

func (a *Archive) loadBlob(ctx context.Context, name string) (*Report, error) {
	_, codecName, ok := parseBlobName(path.Clean(name))
	if !ok {
		return nil, fmt.Errorf("archive: unexpected blob name %q", name)
	}
	c, ok := codec.ByName(codecName)
	if !ok {
		return nil, fmt.Errorf("archive: blob %s uses unknown codec %q", name, codecName)
	}

	frame, err := a.store.Get(ctx, name)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrReportNotFound, name)
		}
		return nil, err
	}
	if err := a.rc.AcquireIO(ctx, len(frame)); err != nil {
		return nil, err
	}

	raw, _, err := compress.Decode(frame)
	if err != nil {
		return nil, fmt.Errorf("archive: %s: %w", name, err)
	}
	var r Report
	if err := c.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("archive: decode %s: %w", name, err)
	}
	return &r, nil
}

// List returns the IDs of all archived reports, sorted.
func (a *Archive) List(ctx context.Context) ([]string, error) {
	names, err := a.store.List(ctx, reportsPrefix)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(names))
	for _, name := range names {
		if id, _, ok := parseBlobName(name); ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Delete removes a report. The latest pointer is left untouched.
func (a *Archive) Delete(ctx context.Context, id string) error {
	names, err := a.store.List(ctx, reportsPrefix+id+".")
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := a.store.Delete(ctx, name); err != nil {
			return err
		}
	}
	return nil
}
