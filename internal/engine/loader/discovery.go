package loader

import (
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"

	"go.trai.ch/modload/internal/core/domain"
)

// discover finds the most appropriate binary module, whose dependencies
// are up to date, for the load's interface file. Probes run in a fixed
// order: user cache, prebuilt cache, adjacent binary. Freshness failures
// fall through to the next probe; only a full miss is ErrModuleNotFound.
func (ld *load) discover(cachedOutputPath string) (*domain.DiscoveredModule, error) {
	shouldLoadAdjacentModule := true

	switch ld.l.mode {
	case domain.OnlyInterface:
		// Always skip the caches and adjacent modules and build from the
		// interface.
		return nil, domain.ErrModuleNotFound
	case domain.PreferInterface:
		// Use the caches, but never the module adjacent to the interface.
		shouldLoadAdjacentModule = false
	case domain.PreferBinary:
	case domain.OnlyBinary:
		return nil, zerr.Wrap(domain.ErrNotSupported, "interface loader constructed in only-binary mode")
	}

	// Whatever is in the user cache represents the most up-to-date
	// knowledge we have about this module.
	if data, err := ld.l.fs.ReadFile(cachedOutputPath); err == nil {
		if ld.l.codec.IsSerializedModule(data) {
			if deps, ok := ld.serializedModuleIsUpToDate(data); ok {
				return domain.NormalModule(cachedOutputPath, data, deps), nil
			}
		} else if fwd, err := ParseForwardingModule(data); err == nil {
			if buf, deps, ok := ld.forwardingModuleIsUpToDate(fwd); ok {
				return domain.ForwardedModule(fwd.UnderlyingPath, buf, deps), nil
			}
		}
	}
	// Failing to open the cache entry, for any reason, falls through.

	if ld.l.inv.PrebuiltCachePath != "" {
		if candidate, ok := ld.prebuiltModulePath(); ok {
			if buf, deps, ok := ld.moduleIsUpToDate(candidate); ok {
				return domain.PrebuiltModule(candidate, buf, deps), nil
			}
		}
	}

	if !shouldLoadAdjacentModule {
		return nil, domain.ErrModuleNotFound
	}

	// An adjacent binary module always defers to the sibling binary
	// loader: it will either load it or produce the better diagnostic for
	// an unreadable or stale one.
	if data, err := ld.l.fs.ReadFile(ld.modulePath); err == nil {
		if _, ok := ld.serializedModuleIsUpToDate(data); !ok {
			ld.l.logger.Debug("adjacent module is stale, deferring to binary loader",
				"path", ld.modulePath)
		}
		return nil, zerr.Wrap(domain.ErrNotSupported, "adjacent binary module present")
	} else if ld.l.fs.Exists(ld.modulePath) {
		return nil, zerr.Wrap(domain.ErrNotSupported, "adjacent binary module unreadable")
	}

	// Nothing up to date anywhere; the module must be built from its
	// interface.
	return nil, domain.ErrModuleNotFound
}

// serializedModuleIsUpToDate validates a serialized module buffer and
// checks its embedded dependency list against the filesystem.
func (ld *load) serializedModuleIsUpToDate(data []byte) ([]domain.Dependency, bool) {
	deps, err := ld.l.codec.ExtractDependencies(data)
	if err != nil {
		return nil, false
	}
	return deps, ld.depsUpToDate(deps)
}

// moduleIsUpToDate reads the module at path and checks it like
// serializedModuleIsUpToDate, returning the buffer on success.
func (ld *load) moduleIsUpToDate(path string) ([]byte, []domain.Dependency, bool) {
	data, err := ld.l.fs.ReadFile(path)
	if err != nil {
		return nil, nil, false
	}
	deps, ok := ld.serializedModuleIsUpToDate(data)
	if !ok {
		return nil, nil, false
	}
	return data, deps, true
}

// forwardingModuleIsUpToDate checks that the forwarded-to module is a
// valid serialized module and that the forwarding record's own dependency
// list (not the underlying module's) is current.
func (ld *load) forwardingModuleIsUpToDate(fwd *domain.ForwardingModule) ([]byte, []domain.Dependency, bool) {
	buf, err := ld.l.fs.ReadFile(fwd.UnderlyingPath)
	if err != nil || !ld.l.codec.IsSerializedModule(buf) || ld.l.codec.ValidateModule(buf) != nil {
		return nil, nil, false
	}

	deps := fwd.DependencyRecords()
	if !ld.depsUpToDate(deps) {
		return nil, nil, false
	}
	return buf, deps, true
}

// prebuiltModulePath computes the expected prebuilt-cache location for the
// interface, or false when the interface does not live under the SDK. The
// candidate is prebuilt/<module>.<ext> or, for the architecture-fanout
// layout, prebuilt/<module>.<ext>/<arch>.<ext>; no cache key applies.
func (ld *load) prebuiltModulePath() (string, bool) {
	sdkRoot := ld.l.inv.SDKRoot
	if sdkRoot == "" || !pathHasPrefix(ld.interfacePath, sdkRoot) {
		return "", false
	}

	candidate := ld.l.inv.PrebuiltCachePath

	parentName := filepath.Base(filepath.Dir(ld.interfacePath))
	if strings.TrimPrefix(filepath.Ext(parentName), ".") == domain.BinaryModuleExt {
		candidate = filepath.Join(candidate, parentName)
	}

	return filepath.Join(candidate, filepath.Base(ld.modulePath)), true
}

// pathHasPrefix reports whether path is prefix itself or lies below it,
// comparing whole path components.
func pathHasPrefix(path, prefix string) bool {
	path = filepath.Clean(path)
	prefix = filepath.Clean(prefix)
	if path == prefix {
		return true
	}
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(path, prefix)
}
