package mmap

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n"), 0o644))

	f, err := Open(path)
	require.NoError(t, err)

	assert.Equal(t, "a,b\n1,2\n", string(f.Bytes()))
	assert.Equal(t, 8, f.Len())
	assert.NoError(t, f.Advise(AccessSequential))

	data, err := io.ReadAll(f.Reader())
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(data))

	require.NoError(t, f.Close())
	require.NoError(t, f.Close())
	assert.Nil(t, f.Bytes())
	assert.ErrorIs(t, f.Advise(AccessRandom), ErrClosed)
}

func TestOpen_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	f, err := Open(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Zero(t, f.Len())
	assert.NoError(t, f.Advise(AccessWillNeed))
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
