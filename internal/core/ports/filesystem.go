package ports

import "io/fs"

// FileSystem is the filesystem surface the loader reads through. Keeping
// it behind a port means tests can substitute a double without touching
// process-global state.
//
//go:generate go run go.uber.org/mock/mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type FileSystem interface {
	// Stat returns file metadata for the given path.
	Stat(path string) (fs.FileInfo, error)

	// ReadFile returns the full contents of the file at path.
	ReadFile(path string) ([]byte, error)

	// Exists reports whether the path can be statted.
	Exists(path string) bool

	// WriteOrReplace atomically writes data to path using the repo's
	// temp-file-and-rename convention.
	WriteOrReplace(path string, data []byte) error

	// MkdirAll creates the directory and any missing parents.
	MkdirAll(path string) error
}
