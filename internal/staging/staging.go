// Package staging manages the per-request temporary directory that holds an
// uploaded file for the duration of one conversion. A staging dir is owned by
// exactly one request and is deleted unconditionally when the request ends.
package staging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"mdsidecar/internal/domain"
)

// Dir is a single-request staging directory.
type Dir struct {
	path string
}

// NewDir creates a fresh staging directory under root (the OS temp dir when
// root is empty).
func NewDir(root string) (*Dir, error) {
	if root == "" {
		root = os.TempDir()
	}
	path := filepath.Join(root, "mdsidecar-"+uuid.NewString())
	if err := os.MkdirAll(path, 0o700); err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}
	return &Dir{path: path}, nil
}

// Stage streams the upload to disk under the given (already sanitized) name,
// enforcing the byte ceiling while copying so an oversized upload never
// occupies more than maxBytes+1 of disk. Returns the staged path and size.
func (d *Dir) Stage(name string, r io.Reader, maxBytes int64) (string, int64, error) {
	path := filepath.Join(d.path, name)

	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("create staged file: %w", err)
	}

	written, err := io.Copy(f, io.LimitReader(r, maxBytes+1))
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", 0, fmt.Errorf("stage upload: %w", err)
	}
	if written > maxBytes {
		return "", 0, &domain.PayloadTooLargeError{Limit: maxBytes}
	}

	return path, written, nil
}

// Path returns the directory path.
func (d *Dir) Path() string {
	return d.path
}

// Remove deletes the staging directory and everything in it. Errors are
// ignored: the dir lives under the temp root and the OS reclaims it anyway.
func (d *Dir) Remove() {
	os.RemoveAll(d.path)
}
