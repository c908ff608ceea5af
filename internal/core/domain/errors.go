package domain

import "go.trai.ch/zerr"

var (
	// ErrModuleNotFound is returned when nothing loadable exists for an
	// interface, forcing a build, or when the interface file itself is
	// missing.
	ErrModuleNotFound = zerr.New("module not found")

	// ErrNotSupported defers a load to the sibling binary-module loader. It
	// is also returned for forwarding records with an unrecognized version.
	ErrNotSupported = zerr.New("not supported")

	// ErrBuildFailed is the caller-visible error when building a module
	// from its interface fails.
	ErrBuildFailed = zerr.New("failed to build module from interface")

	// ErrMalformedInterface is returned when an interface file is missing
	// its format-version or module-flags header line.
	ErrMalformedInterface = zerr.New("malformed module interface")

	// ErrUnsupportedFormatVersion is returned when an interface declares a
	// format major version this loader does not understand.
	ErrUnsupportedFormatVersion = zerr.New("unsupported interface format version")

	// ErrModuleNameMismatch is returned when the module name embedded in
	// the interface flags differs from the requested module.
	ErrModuleNameMismatch = zerr.New("module name mismatch")

	// ErrSubCompilationFailed is returned when the sub-compilation of an
	// interface diagnoses an error or crashes.
	ErrSubCompilationFailed = zerr.New("sub-compilation failed")

	// ErrMalformedModule is returned when a buffer fails serialized-module
	// validation.
	ErrMalformedModule = zerr.New("malformed serialized module")

	// ErrMalformedDependency is returned when a cached module dependency
	// cannot be read or validated during flattening.
	ErrMalformedDependency = zerr.New("failed to extract dependencies from cached module")

	// ErrCacheCreateFailed is returned when the user cache directory cannot
	// be created.
	ErrCacheCreateFailed = zerr.New("failed to create module cache directory")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be
	// parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")
)
