// Package fs provides filesystem adapters for the loader: an os-backed
// FileSystem port, a doc-sidecar loader, and atomic writes.
package fs

import (
	iofs "io/fs"
	"os"

	"go.trai.ch/modload/internal/core/domain"
	"go.trai.ch/modload/internal/core/ports"
)

var _ ports.FileSystem = (*OS)(nil)

// OS implements ports.FileSystem against the real filesystem.
type OS struct{}

// NewOS creates a new os-backed FileSystem.
func NewOS() *OS {
	return &OS{}
}

// Stat returns file metadata for the given path.
func (o *OS) Stat(path string) (iofs.FileInfo, error) {
	return os.Stat(path)
}

// ReadFile returns the full contents of the file at path.
func (o *OS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path) //nolint:gosec // Path is controlled by caller
}

// Exists reports whether the path can be statted.
func (o *OS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// WriteOrReplace atomically writes data to path.
func (o *OS) WriteOrReplace(path string, data []byte) error {
	return WriteOrReplace(path, data)
}

// MkdirAll creates the directory and any missing parents.
func (o *OS) MkdirAll(path string) error {
	return os.MkdirAll(path, domain.DirPerm)
}
