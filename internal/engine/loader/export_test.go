package loader

import "go.trai.ch/modload/internal/core/domain"

// Test hooks exposing per-load internals to the _test package.

// DepsUpToDate runs the freshness checker for a single hypothetical load.
func (l *Loader) DepsUpToDate(deps []domain.Dependency) bool {
	ld := &load{l: l}
	return ld.depsUpToDate(deps)
}

// Discover runs the discovery pipeline for the given module location.
func (l *Loader) Discover(modulePath, interfacePath, moduleName, cachedOutputPath string) (*domain.DiscoveredModule, error) {
	ld := &load{l: l, modulePath: modulePath, interfacePath: interfacePath, moduleName: moduleName}
	return ld.discover(cachedOutputPath)
}

var (
	RewriteSDKRelative = rewriteSDKRelative
	ParseFormatVersion = parseFormatVersion
)
