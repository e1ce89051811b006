// Package store provides the blob-storage abstraction backing session
// indexes, state documents and file attachments.
package store

import "errors"

// ErrNotFound is returned when a key does not exist in the store.
var ErrNotFound = errors.New("not found")

// FileInfo describes a stored blob within a directory listing.
type FileInfo struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// Store is a key-addressed blob store. Keys are forward-slash relative
// paths; callers are responsible for producing safe path segments.
type Store interface {
	// Read returns the blob at key, or ErrNotFound.
	Read(key string) ([]byte, error)
	// Write stores the blob at key, overwriting any previous content and
	// creating missing parent directories.
	Write(key string, data []byte) error
	// Delete removes the blob at key. Deleting a missing key returns
	// ErrNotFound.
	Delete(key string) error
	// List returns the regular files directly under dir. A missing
	// directory yields an empty listing, never an error.
	List(dir string) ([]FileInfo, error)
	// EnsureDir creates dir and any missing parents. Idempotent.
	EnsureDir(dir string) error
	// RemoveAll recursively removes dir and everything beneath it.
	// Removing a missing directory is a no-op.
	RemoveAll(dir string) error
}
