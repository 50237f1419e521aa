package mmap

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
)

// AccessPattern hints the kernel about how the mapping will be read.
type AccessPattern int

const (
	AccessDefault AccessPattern = iota
	AccessSequential
	AccessRandom
	AccessWillNeed
)

var (
	// ErrClosed is returned when using a closed mapping.
	ErrClosed = errors.New("mmap: mapping is closed")
	// ErrInvalidSize is returned for files that cannot be mapped.
	ErrInvalidSize = errors.New("mmap: invalid file size")
)

// File is a read-only memory-mapped file.
type File struct {
	data   []byte
	f      *os.File
	closed atomic.Bool
}

// Open maps the file at path. Empty files are valid and map to no bytes.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	size := fi.Size()
	if size == 0 {
		return &File{f: f}, nil
	}
	if size < 0 || int64(int(size)) != size {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	data, err := mmap(f, int(size))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}

	return &File{data: data, f: f}, nil
}

// Bytes returns the mapped contents. The slice is read-only.
func (m *File) Bytes() []byte {
	if m == nil || m.closed.Load() {
		return nil
	}
	return m.data
}

// Len returns the mapped size in bytes.
func (m *File) Len() int {
	return len(m.Bytes())
}

// Reader returns a reader over the mapped contents.
func (m *File) Reader() *bytes.Reader {
	return bytes.NewReader(m.Bytes())
}

// Advise passes an access hint to the kernel. The hint is advisory.
func (m *File) Advise(p AccessPattern) error {
	if m == nil || m.closed.Load() {
		return ErrClosed
	}
	return advise(m.data, p)
}

// Close unmaps the memory and closes the file. It is idempotent.
func (m *File) Close() error {
	if m == nil || !m.closed.CompareAndSwap(false, true) {
		return nil
	}
	var err error
	if m.data != nil {
		err = munmap(m.data)
		m.data = nil
	}
	if closeErr := m.f.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}
