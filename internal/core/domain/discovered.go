package domain

// DiscoveredKind is the kind of binary module discovery located.
type DiscoveredKind uint8

const (
	// DiscoveredNormal is a module found in the user cache.
	DiscoveredNormal DiscoveredKind = iota
	// DiscoveredPrebuilt is a module found in the read-only prebuilt cache.
	DiscoveredPrebuilt
	// DiscoveredForwarded is a prebuilt module reached through a forwarding
	// record in the user cache.
	DiscoveredForwarded
)

// DiscoveredModule is the result of a successful discovery. Path is the
// on-disk location the buffer was read from; for forwarded modules it is
// the underlying prebuilt module, not the forwarding record.
type DiscoveredModule struct {
	kind DiscoveredKind

	// Path is the filesystem location of the serialized module.
	Path string

	// Buffer holds the module contents. Ownership moves to the caller.
	Buffer []byte

	// Deps is the dependency list the winning probe validated. Needed when
	// a prebuilt discovery is followed by a forwarding-module write.
	Deps []Dependency
}

// NormalModule creates a user-cache discovery result.
func NormalModule(path string, buffer []byte, deps []Dependency) *DiscoveredModule {
	return &DiscoveredModule{kind: DiscoveredNormal, Path: path, Buffer: buffer, Deps: deps}
}

// PrebuiltModule creates a prebuilt-cache discovery result.
func PrebuiltModule(path string, buffer []byte, deps []Dependency) *DiscoveredModule {
	return &DiscoveredModule{kind: DiscoveredPrebuilt, Path: path, Buffer: buffer, Deps: deps}
}

// ForwardedModule creates a discovery result whose dependencies were
// validated through a forwarding record.
func ForwardedModule(path string, buffer []byte, deps []Dependency) *DiscoveredModule {
	return &DiscoveredModule{kind: DiscoveredForwarded, Path: path, Buffer: buffer, Deps: deps}
}

// Kind returns the discovery kind.
func (m *DiscoveredModule) Kind() DiscoveredKind { return m.kind }

// IsNormal reports whether the module came from the user cache.
func (m *DiscoveredModule) IsNormal() bool { return m.kind == DiscoveredNormal }

// IsPrebuilt reports whether the module came from the prebuilt cache.
func (m *DiscoveredModule) IsPrebuilt() bool { return m.kind == DiscoveredPrebuilt }

// IsForwarded reports whether the module was reached through a forwarding
// record.
func (m *DiscoveredModule) IsForwarded() bool { return m.kind == DiscoveredForwarded }
