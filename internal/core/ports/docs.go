package ports

// DocLoader loads a module's documentation sidecar once the primary module
// buffer has been resolved.
//
//go:generate go run go.uber.org/mock/mockgen -source=docs.go -destination=mocks/mock_docs.go -package=mocks
type DocLoader interface {
	// LoadDoc returns the doc sidecar contents at the given path, or
	// nil with no error when the sidecar does not exist.
	LoadDoc(path string) ([]byte, error)
}
