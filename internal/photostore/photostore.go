package photostore

import (
	"context"
	"io"
)

// PhotoStore persists decoded photo bytes under generated unique names.
type PhotoStore interface {
	// Save writes data as a new file and returns its generated name. The
	// name is reported only after the file is confirmed present on disk.
	Save(ctx context.Context, ext string, data []byte) (name string, err error)
	// Open returns the stored bytes and MIME type for name.
	Open(ctx context.Context, name string) (io.ReadCloser, string, error)
	// Delete removes name. Deleting a name that does not exist is not an
	// error.
	Delete(ctx context.Context, name string) error
	// Exists reports whether name is present in the store.
	Exists(ctx context.Context, name string) (bool, error)
}
