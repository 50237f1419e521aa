package dataset

import (
	"bytes"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hupe1980/clustereval/internal/mmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mixedCSV = `id,width,shape,height,class
1,1.5,round,2.0,a
2,2.5,flat,3.0,b
3, 3.5 ,round,4.0,a
`

func TestRead(t *testing.T) {
	ds, err := Read(strings.NewReader(mixedCSV),
		WithColumns("width", "shape", "height"),
		WithCategorical("shape"),
		WithLabelColumn("class"),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"width", "shape", "height"}, ds.Columns)
	assert.Equal(t, [][]float64{{1.5, 0, 2}, {2.5, 1, 3}, {3.5, 0, 4}}, ds.X)
	assert.Equal(t, []int{1}, ds.Categorical)
	assert.Equal(t, []string{"round", "flat"}, ds.Encoders["shape"].Values())
	assert.Equal(t, []int{0, 1, 0}, ds.Labels)
	assert.Equal(t, []string{"a", "b", "a"}, ds.LabelNames())
	assert.Equal(t, 3, ds.Rows())
}

func TestRead_DefaultColumns(t *testing.T) {
	ds, err := Read(strings.NewReader("x;y;label\n1;2;u\n3;4;v\n"),
		WithComma(';'),
		WithLabelColumn("label"),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"x", "y"}, ds.Columns)
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, ds.X)
	assert.Empty(t, ds.Categorical)
}

func TestRead_NoLabel(t *testing.T) {
	ds, err := Read(strings.NewReader("x\n1\n"))
	require.NoError(t, err)
	assert.Nil(t, ds.Labels)
	assert.Nil(t, ds.LabelNames())
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		opts []Option
		err  error
	}{
		{"empty", "", nil, ErrNoHeader},
		{"unknown label", "x\n1\n", []Option{WithLabelColumn("y")}, ErrUnknownColumn},
		{"unknown column", "x\n1\n", []Option{WithColumns("z")}, ErrUnknownColumn},
		{"categorical not a feature", "x,y\n1,2\n", []Option{WithColumns("x"), WithCategorical("y")}, ErrUnknownColumn},
		{"only label", "y\n1\n", []Option{WithLabelColumn("y")}, ErrNoFeatures},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.in), tt.opts...)
			assert.ErrorIs(t, err, tt.err)
		})
	}

	_, err := Read(strings.NewReader("x\nabc\n"))
	assert.ErrorContains(t, err, `line 2 column "x"`)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(mixedCSV), 0o644))

	ds, err := Load(path, WithColumns("width", "height"), WithLabelColumn("class"))
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1.5, 2}, {2.5, 3}, {3.5, 4}}, ds.X)

	_, err = Load(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEncoder(t *testing.T) {
	e := NewEncoder()
	assert.Equal(t, 0, e.Encode("b"))
	assert.Equal(t, 1, e.Encode("a"))
	assert.Equal(t, 0, e.Encode("b"))
	assert.Equal(t, 2, e.Len())

	v, ok := e.Decode(1)
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	_, ok = e.Decode(5)
	assert.False(t, ok)
}

func TestProject2D(t *testing.T) {
	// Points on a line in 3-D: all variance lies on the first component.
	X := [][]float64{{0, 0, 0}, {1, 2, 2}, {2, 4, 4}, {3, 6, 6}}

	proj, p, err := Project2D(X)
	require.NoError(t, err)
	require.Len(t, proj, 4)

	for _, row := range proj {
		require.Len(t, row, 2)
		assert.InDelta(t, 0, row[1], 1e-9)
	}
	// Consecutive points are 3 apart along the line.
	assert.InDelta(t, 3, math.Abs(proj[1][0]-proj[0][0]), 1e-9)
	assert.InDelta(t, 0, proj[0][0]+proj[3][0], 1e-9, "projection is centered")

	centroid := p.Transform([][]float64{{1.5, 3, 3}})
	assert.InDelta(t, 0, centroid[0][0], 1e-9)
}

func TestProject2D_OneDimension(t *testing.T) {
	proj, _, err := Project2D([][]float64{{1}, {3}})
	require.NoError(t, err)
	assert.InDelta(t, 1, math.Abs(proj[0][0]), 1e-9)
	assert.Zero(t, proj[0][1])
}

func TestProject2D_Empty(t *testing.T) {
	_, _, err := Project2D(nil)
	assert.ErrorIs(t, err, ErrProjection)
}

func TestProject2D_InvalidShape(t *testing.T) {
	tests := []struct {
		name string
		X    [][]float64
	}{
		{"no columns", [][]float64{{}, {}}},
		{"ragged", [][]float64{{0, 0}, {1}, {2, 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Project2D(tt.X)
			assert.ErrorIs(t, err, ErrProjection)
		})
	}
}

func TestProjection_TransformWidth(t *testing.T) {
	p, err := FitPCA([][]float64{{0, 0}, {2, 0}})
	require.NoError(t, err)

	short := p.Transform([][]float64{{1}})
	assert.InDelta(t, 0, short[0][0], 1e-9)

	wide := p.Transform([][]float64{{1, 0, 99}})
	assert.InDelta(t, 0, wide[0][0], 1e-9)
}

func TestAdviseSequential_LogsFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(mixedCSV), 0o644))

	f, err := mmap.Open(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	adviseSequential(f, path, logger)

	assert.Contains(t, buf.String(), "mmap advise failed")
	assert.Contains(t, buf.String(), "level=DEBUG")
}

func TestLoad_WithLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(mixedCSV), 0o644))

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ds, err := Load(path, WithLogger(logger), WithColumns("width", "height"), WithLabelColumn("class"))
	require.NoError(t, err)
	assert.Len(t, ds.X, 3)
	assert.Empty(t, buf.String())
}
