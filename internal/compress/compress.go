// Package compress frames archive payloads with an optional LZ4 or Zstandard
// compression pass.
//
// Frame layout (little endian):
//
//	[magic "CE"][algorithm uint8][raw size uint32][stored size uint32][data]
//
// The algorithm byte is rewritten to None when compression would not shrink
// the payload below 90% of its raw size.
package compress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Algorithm selects the compression applied by Encode.
type Algorithm uint8

const (
	None Algorithm = iota
	LZ4
	Zstd
)

func (a Algorithm) String() string {
	switch a {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(a))
	}
}

// Parse maps "none", "lz4" or "zstd" onto an Algorithm. The empty string is None.
func Parse(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd", "zstandard":
		return Zstd, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

var (
	// ErrUnknownAlgorithm is returned for unsupported algorithm names or frame bytes.
	ErrUnknownAlgorithm = errors.New("compress: unknown algorithm")
	// ErrCorrupt is returned for truncated or inconsistent frames.
	ErrCorrupt = errors.New("compress: corrupt frame")
)

const (
	headerSize = 11
	magic0     = 'C'
	magic1     = 'E'
	// Payloads that do not shrink below this ratio are stored raw.
	minRatio = 0.9
)

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// Encode compresses data with a and returns the frame.
func Encode(data []byte, a Algorithm) ([]byte, error) {
	var packed []byte
	switch a {
	case None:
	case LZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, err
		}
		// n == 0 means incompressible.
		packed = buf[:n]
	case Zstd:
		enc := getZstdEncoder()
		packed = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, uint8(a))
	}

	if len(packed) == 0 || float64(len(packed)) > float64(len(data))*minRatio {
		a, packed = None, data
	}

	frame := make([]byte, headerSize+len(packed))
	frame[0], frame[1], frame[2] = magic0, magic1, byte(a)
	binary.LittleEndian.PutUint32(frame[3:], uint32(len(data)))
	binary.LittleEndian.PutUint32(frame[7:], uint32(len(packed)))
	copy(frame[headerSize:], packed)
	return frame, nil
}

// Decode returns the payload of a frame written by Encode and the algorithm
// that was stored.
func Decode(frame []byte) ([]byte, Algorithm, error) {
	if len(frame) < headerSize || frame[0] != magic0 || frame[1] != magic1 {
		return nil, 0, fmt.Errorf("%w: bad header", ErrCorrupt)
	}
	a := Algorithm(frame[2])
	rawSize := binary.LittleEndian.Uint32(frame[3:])
	storedSize := binary.LittleEndian.Uint32(frame[7:])
	if uint64(len(frame)-headerSize) != uint64(storedSize) {
		return nil, a, fmt.Errorf("%w: have %d payload bytes, header says %d", ErrCorrupt, len(frame)-headerSize, storedSize)
	}
	payload := frame[headerSize:]

	switch a {
	case None:
		if storedSize != rawSize {
			return nil, a, fmt.Errorf("%w: raw frame size mismatch", ErrCorrupt)
		}
		return append([]byte(nil), payload...), a, nil
	case LZ4:
		out := make([]byte, rawSize)
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, a, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		if uint32(n) != rawSize {
			return nil, a, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
		return out, a, nil
	case Zstd:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)
		out, err := dec.DecodeAll(payload, make([]byte, 0, rawSize))
		if err != nil {
			return nil, a, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		if uint32(len(out)) != rawSize {
			return nil, a, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
		return out, a, nil
	default:
		return nil, a, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, uint8(a))
	}
}
