package ports

// DependencyTracker receives every dependency path the loader examines.
// It is owned by the caller and must tolerate the serial writes the loader
// performs.
//
//go:generate go run go.uber.org/mock/mockgen -source=tracker.go -destination=mocks/mock_tracker.go -package=mocks
type DependencyTracker interface {
	// AddDependency reports a path. system is true for SDK-relative
	// dependencies.
	AddDependency(path string, system bool)
}
