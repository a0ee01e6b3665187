// Package remote defines the narrow interface a cloud file store must expose
// to be driven by the dropfs client. Implementations exist for Dropbox, S3
// and a local directory; callers can supply their own.
package remote

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned (possibly wrapped) when an operation targets a path
// that does not exist in the store.
var ErrNotFound = errors.New("path not found")

// ErrNotSupported is returned by Copy or Move when the store exposes only one
// of the two relocation primitives. The client falls back to the other.
var ErrNotSupported = errors.New("operation not supported by store")

// Match is a single result of a name search.
type Match struct {
	// Path is the absolute slash-separated path of the matched object,
	// in the store's own case folding.
	Path string
	// Name is the leaf name of the matched object.
	Name string
}

// Entry is a single object in a folder listing.
type Entry struct {
	Name     string
	IsFolder bool
}

// Metadata describes a downloaded object.
type Metadata struct {
	Path string
	Size int64
}

// Store is the set of remote primitives the client consumes. All paths are
// normalized absolute paths ("/a/b.txt"); the root folder is "/".
//
// Implementations must be safe for the same level of concurrent use as the
// SDK they wrap; no additional locking is layered on top.
type Store interface {
	// Search returns objects named name under folder (non-recursive where
	// the backend allows scoping). An empty result is not an error.
	Search(ctx context.Context, folder, name string) ([]Match, error)

	// ListFolder returns the immediate entries of a folder.
	ListFolder(ctx context.Context, path string) ([]Entry, error)

	// Delete removes the object at path. Whether deleting an absent path
	// fails is the backend's own semantics and is not masked.
	Delete(ctx context.Context, path string) error

	// Copy duplicates src at dest, or returns ErrNotSupported.
	Copy(ctx context.Context, src, dest string) error

	// Move relocates src to dest, or returns ErrNotSupported.
	Move(ctx context.Context, src, dest string) error

	// Download returns the object's metadata and its content. The caller
	// must close the reader. A transport failure is returned as an error,
	// never as partial content.
	Download(ctx context.Context, path string) (Metadata, io.ReadCloser, error)

	// Upload writes data to path. With overwrite set, an existing object
	// at path is replaced; otherwise the upload fails if path exists.
	Upload(ctx context.Context, data io.Reader, path string, overwrite bool) error

	// Close releases the connection resources, if any.
	Close() error
}
