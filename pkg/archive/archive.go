// Package archive stores named snapshot files on a pluggable backend. It
// abstracts the underlying storage so that callers can keep snapshots on
// local disk or in an S3-compatible object store without changing
// application code.
package archive

import (
	"context"
	"io"
	"time"
)

// Info describes one archived file.
type Info struct {
	// Name is the file's name within the archive.
	Name string

	// Size is the file size in bytes.
	Size int64

	// ModTime is when the file was last written.
	ModTime time.Time
}

// Store is a minimal interface for a snapshot archive.
//
// Names are forward-slash separated and relative to the archive root.
// Implementations must be safe for concurrent use.
type Store interface {
	// Put opens the named file for writing. If the file already exists
	// it is replaced. The caller must close the returned WriteCloser to
	// flush data.
	Put(ctx context.Context, name string) (io.WriteCloser, error)

	// Get opens the named file for reading. The caller must close the
	// returned ReadCloser when done. If the file does not exist, an
	// error wrapping os.ErrNotExist is returned.
	Get(ctx context.Context, name string) (io.ReadCloser, error)

	// Remove deletes the named file. Removing an absent file is not an
	// error (idempotent).
	Remove(ctx context.Context, name string) error

	// List returns the archived files sorted by name.
	List(ctx context.Context) ([]Info, error)
}
