package compress

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	compressible := bytes.Repeat([]byte(`{"ars":0.73,"purity":0.89}`), 200)

	random := make([]byte, 4096)
	_, err := rand.Read(random)
	require.NoError(t, err)

	tests := []struct {
		name   string
		data   []byte
		algo   Algorithm
		stored Algorithm
	}{
		{"none", compressible, None, None},
		{"lz4", compressible, LZ4, LZ4},
		{"zstd", compressible, Zstd, Zstd},
		{"lz4 incompressible", random, LZ4, None},
		{"zstd incompressible", random, Zstd, None},
		{"empty", nil, Zstd, None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := Encode(tt.data, tt.algo)
			require.NoError(t, err)
			if tt.stored != None {
				assert.Less(t, len(frame), len(tt.data))
			}

			out, stored, err := Decode(frame)
			require.NoError(t, err)
			assert.Equal(t, tt.stored, stored)
			assert.Equal(t, len(tt.data), len(out))
			assert.True(t, bytes.Equal(tt.data, out))
		})
	}
}

func TestDecode_Corrupt(t *testing.T) {
	frame, err := Encode(bytes.Repeat([]byte("abc"), 100), Zstd)
	require.NoError(t, err)

	_, _, err = Decode(frame[:5])
	assert.ErrorIs(t, err, ErrCorrupt)

	_, _, err = Decode(frame[:len(frame)-1])
	assert.ErrorIs(t, err, ErrCorrupt)

	bad := append([]byte(nil), frame...)
	bad[0] = 'X'
	_, _, err = Decode(bad)
	assert.ErrorIs(t, err, ErrCorrupt)

	bad = append([]byte(nil), frame...)
	bad[2] = 9
	_, _, err = Decode(bad)
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestEncode_UnknownAlgorithm(t *testing.T) {
	_, err := Encode([]byte("x"), Algorithm(7))
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestParse(t *testing.T) {
	for _, a := range []Algorithm{None, LZ4, Zstd} {
		got, err := Parse(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}

	got, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, None, got)

	_, err = Parse("brotli")
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
	assert.Equal(t, "Unknown(7)", Algorithm(7).String())
}
