package domain

// FormatVersion is the dotted version tag carried in an interface file
// header.
type FormatVersion struct {
	Major int
	Minor int
}

// InterfaceFormatVersion is the interface format this loader supports.
// Anything with the same major version is accepted; minor drift is
// tolerated.
var InterfaceFormatVersion = FormatVersion{Major: 1, Minor: 0}

// Invocation is the state of the parent compilation the loader was created
// for. The loader copies most of it into each sub-invocation.
type Invocation struct {
	// CompilerVersion is the build identity string of the compiler driving
	// this process. Part of the cache key.
	CompilerVersion string

	// TargetArch is the target architecture name. Part of the cache key.
	TargetArch string

	// SDKRoot is the root of the platform SDK. Read-only during a load.
	SDKRoot string

	ImportSearchPaths    []string
	FrameworkSearchPaths []string
	RuntimeResourcePath  string

	// ModuleCachePath is the writable user cache directory.
	ModuleCachePath string

	// PrebuiltCachePath is the read-only prebuilt cache directory. Empty
	// disables the prebuilt probe.
	PrebuiltCachePath string

	// TrackSystemDeps controls whether SDK dependencies are reported to the
	// dependency tracker. Part of the cache key.
	TrackSystemDeps bool

	// SerializeDependencyHashes selects content-hash dependency records
	// instead of mtime records when building.
	SerializeDependencyHashes bool

	// DebuggerSupport softens certain diagnostics for interactive use.
	DebuggerSupport bool
}

// SubInvocation is the compiler invocation the builder constructs to turn
// an interface file into a binary module.
type SubInvocation struct {
	ModuleName    string
	InterfacePath string

	// OutputPath is where the builder writes the finished binary module.
	// The sub-invocation carries no separate main-output path.
	OutputPath string

	TargetArch           string
	SDKRoot              string
	ImportSearchPaths    []string
	FrameworkSearchPaths []string
	RuntimeResourcePath  string
	ModuleCachePath      string
	PrebuiltCachePath    string

	// Args is the flag list extracted from the interface header, passed
	// through to the compiler driver verbatim.
	Args []string

	SuppressWarnings bool
	OptimizeForSpeed bool
	DebuggerSupport  bool
	TrackSystemDeps  bool
	SerializeHashes  bool
}
