package blobstore

import (
	"context"
	"errors"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations return an error that satisfies errors.Is(err, ErrNotFound).
// It maps to os.ErrNotExist so local file errors match without translation.
var ErrNotFound = os.ErrNotExist

// ErrConcurrentModification is returned by Committer.Commit when another
// writer committed the same version first.
var ErrConcurrentModification = errors.New("concurrent modification detected")

// Store reads and writes whole blobs by name.
type Store interface {
	// Put writes a blob atomically, replacing any previous content.
	Put(ctx context.Context, name string, data []byte) error

	// Get returns the content of a blob.
	Get(ctx context.Context, name string) ([]byte, error)

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the sorted names that start with prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Committer keeps a versioned pointer to a blob name.
type Committer interface {
	// Commit points the head at name and returns the new version.
	Commit(ctx context.Context, name string) (uint64, error)

	// Head returns the current version and blob name, or ErrNotFound when
	// nothing was committed.
	Head(ctx context.Context) (uint64, string, error)
}
