package fs

import (
	"errors"
	iofs "io/fs"
	"os"

	"go.trai.ch/zerr"

	"go.trai.ch/modload/internal/core/ports"
)

var _ ports.DocLoader = (*DocLoader)(nil)

// DocLoader reads module documentation sidecars from disk. A missing
// sidecar is not an error; modules are allowed to ship without docs.
type DocLoader struct{}

// NewDocLoader creates a new DocLoader.
func NewDocLoader() *DocLoader {
	return &DocLoader{}
}

// LoadDoc returns the doc sidecar contents at path, or nil when absent.
func (d *DocLoader) LoadDoc(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is derived from the module location
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read module doc"), "path", path)
	}
	return data, nil
}
