package domain

// ForwardingModuleVersion is the only forwarding record version this loader
// reads or writes.
const ForwardingModuleVersion uint32 = 1

// ForwardingDependency is a dependency entry inside a forwarding module.
// Forwarding modules expand SDK-relative paths at write time, so Path is
// always absolute, and records are always mtime-verified.
type ForwardingDependency struct {
	Path  string
	Size  uint64
	MTime uint64
}

// ForwardingModule is a small record stored in the user cache that points
// at a module in the prebuilt cache while carrying its own dependency list.
type ForwardingModule struct {
	// UnderlyingPath is the path to the original module in the prebuilt
	// cache.
	UnderlyingPath string

	Dependencies []ForwardingDependency

	Version uint32
}

// NewForwardingModule creates an empty forwarding module for the given
// underlying path at the current version.
func NewForwardingModule(underlyingPath string) *ForwardingModule {
	return &ForwardingModule{
		UnderlyingPath: underlyingPath,
		Version:        ForwardingModuleVersion,
	}
}

// AddDependency appends a dependency entry.
func (f *ForwardingModule) AddDependency(path string, size, mtime uint64) {
	f.Dependencies = append(f.Dependencies, ForwardingDependency{
		Path:  path,
		Size:  size,
		MTime: mtime,
	})
}

// DependencyRecords converts the forwarding entries into mtime-based
// Dependency records for the freshness checker.
func (f *ForwardingModule) DependencyRecords() []Dependency {
	deps := make([]Dependency, 0, len(f.Dependencies))
	for _, d := range f.Dependencies {
		deps = append(deps, ModTimeDependency(d.Path, false, d.Size, d.MTime))
	}
	return deps
}
