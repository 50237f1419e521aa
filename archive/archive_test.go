package archive

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hupe1980/clustereval/blobstore"
	"github.com/hupe1980/clustereval/cluster"
	"github.com/hupe1980/clustereval/codec"
	"github.com/hupe1980/clustereval/internal/compress"
	"github.com/hupe1980/clustereval/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport(t *testing.T) *Report {
	t.Helper()
	r := NewReport("iris", cluster.Config{Algorithm: cluster.KModes, NClusters: 3, RandomSeed: 10}, metrics.Record{
		metrics.KeyARI:    0.75,
		metrics.KeyPurity: 0.9,
		metrics.KeyDB:     0.5,
	})
	r.CreatedAt = r.CreatedAt.Truncate(time.Second)
	return r
}

func TestArchive_SaveLoad(t *testing.T) {
	tests := []struct {
		name  string
		codec codec.Codec
		alg   compress.Algorithm
	}{
		{"go-json zstd", codec.GoJSON{}, compress.Zstd},
		{"json lz4", codec.JSON{}, compress.LZ4},
		{"yaml none", codec.YAML{}, compress.None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			a := New(blobstore.NewMemoryStore(), WithCodec(tt.codec), WithCompression(tt.alg))

			r := sampleReport(t)
			r.Sweep = []SweepPoint{{K: 2, Silhouette: 0.6}, {K: 3, Silhouette: 0.4}}

			name, err := a.Save(ctx, r)
			require.NoError(t, err)
			assert.Equal(t, "reports/"+r.ID+"."+tt.codec.Name(), name)

			got, err := a.Load(ctx, r.ID)
			require.NoError(t, err)
			assert.Equal(t, r.ID, got.ID)
			assert.Equal(t, cluster.KModes, got.Algorithm)
			assert.Equal(t, 3, got.K)
			assert.Equal(t, int64(10), got.Seed)
			assert.True(t, r.CreatedAt.Equal(got.CreatedAt))
			assert.Equal(t, r.Metrics, got.Metrics)
			assert.Equal(t, r.Sweep, got.Sweep)
		})
	}
}

func TestArchive_LatestWithCommitter(t *testing.T) {
	ctx := context.Background()
	a := New(blobstore.NewMemoryStore())

	_, err := a.Latest(ctx)
	require.ErrorIs(t, err, ErrReportNotFound)

	first, second := sampleReport(t), sampleReport(t)
	_, err = a.Save(ctx, first)
	require.NoError(t, err)
	_, err = a.Save(ctx, second)
	require.NoError(t, err)

	got, err := a.Load(ctx, LatestID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
}

func TestArchive_LocalStorePointer(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	a := New(blobstore.NewLocalStore(dir), WithCodec(codec.JSON{}))

	r := sampleReport(t)
	_, err := a.Save(ctx, r)
	require.NoError(t, err)

	pointer, err := os.ReadFile(filepath.Join(dir, latestBlob))
	require.NoError(t, err)
	assert.Equal(t, "reports/"+r.ID+".json", string(pointer))

	got, err := a.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)

	ids, err := a.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{r.ID}, ids)
}

func TestArchive_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	a := New(blobstore.NewMemoryStore())

	r1, r2 := sampleReport(t), sampleReport(t)
	r1.ID, r2.ID = "b-run", "a-run"
	for _, r := range []*Report{r1, r2} {
		_, err := a.Save(ctx, r)
		require.NoError(t, err)
	}

	ids, err := a.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a-run", "b-run"}, ids)

	require.NoError(t, a.Delete(ctx, "a-run"))
	_, err = a.Load(ctx, "a-run")
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestArchive_Errors(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	a := New(store)

	t.Run("missing id", func(t *testing.T) {
		_, err := a.Save(ctx, &Report{})
		assert.Error(t, err)
	})

	t.Run("unknown report", func(t *testing.T) {
		_, err := a.Load(ctx, "nope")
		assert.ErrorIs(t, err, ErrReportNotFound)
	})

	t.Run("corrupt frame", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "reports/bad.json", []byte("garbage")))
		_, err := a.Load(ctx, "bad")
		assert.ErrorIs(t, err, compress.ErrCorrupt)
	})

	t.Run("unknown codec", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "reports/odd.xml", []byte("x")))
		_, err := a.Load(ctx, "odd")
		assert.ErrorContains(t, err, "unknown codec")
	})
}

func TestArchive_Throttled(t *testing.T) {
	ctx := context.Background()
	a := New(blobstore.NewMemoryStore(), WithIOLimit(1<<20))
	require.NotNil(t, a.rc)

	r := sampleReport(t)
	_, err := a.Save(ctx, r)
	require.NoError(t, err)
	_, err = a.Load(ctx, r.ID)
	require.NoError(t, err)
}

func TestParseBlobName(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		codec string
		ok    bool
	}{
		{"reports/abc.go-json", "abc", "go-json", true},
		{"reports/abc.yaml", "abc", "yaml", true},
		{"reports/abc", "", "", false},
		{"reports/abc.", "", "", false},
		{"LATEST", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, c, ok := parseBlobName(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.id, id)
			assert.Equal(t, tt.codec, c)
		})
	}
}
