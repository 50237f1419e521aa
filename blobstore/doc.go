// Package blobstore stores archived evaluation reports.
//
// Store is the minimal interface the archive needs: whole-blob Put and Get,
// prefix List and Delete. Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-process map, for tests and the mem:// archive URL
//   - LocalStore: local directory; reads go through a read-only mmap
//   - minio.Store: MinIO and other S3-compatible servers
//   - s3.Store: Amazon S3, with s3.DDBCommitStore adding a DynamoDB pointer
//
// # Commit Pointers
//
// Stores that also implement Committer keep a versioned pointer to the most
// recently committed blob. Commits are compare-and-swap: a writer that lost a
// race gets ErrConcurrentModification and may retry.
package blobstore
