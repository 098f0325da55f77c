// Package storage abstracts the backend holding uploaded document bytes.
// Paths are slash-separated keys relative to the backend root: a directory
// for the local backend, a bucket for the S3-compatible one.
package storage

import "context"

// Storage is the file backend used by the document services. Implementations
// must be safe for concurrent use.
type Storage interface {
	// Exists reports whether a file is present at the given path.
	Exists(ctx context.Context, path string) (bool, error)
	// Read returns the full content of the file at the given path.
	Read(ctx context.Context, path string) ([]byte, error)
	// Write stores data at the given path, replacing any previous content.
	Write(ctx context.Context, path string, data []byte) error
	// Delete removes the file at the given path. Deleting an absent file
	// is not an error.
	Delete(ctx context.Context, path string) error
	// EnsureDir prepares the container the path lives in (directory or
	// bucket), creating it if missing.
	EnsureDir(ctx context.Context, path string) error
}
