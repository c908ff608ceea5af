// Package loader implements the module-interface loader: given the path
// to a textual interface file, it finds or builds an up-to-date binary
// module for it, backed by a user cache and a read-only prebuilt cache.
package loader

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"

	"go.trai.ch/modload/internal/core/domain"
	"go.trai.ch/modload/internal/core/ports"
)

// Loader locates loadable binary modules for interface files.
type Loader struct {
	fs       ports.FileSystem
	codec    ports.ModuleCodec
	compiler ports.Compiler
	docs     ports.DocLoader
	tracker  ports.DependencyTracker
	logger   ports.Logger

	inv  *domain.Invocation
	mode domain.LoadMode
}

// load carries the per-load state for one FindModule call.
type load struct {
	l             *Loader
	modulePath    string
	interfacePath string
	moduleName    string
}

// Result is a resolved module: the binary module buffer and, when present,
// the documentation sidecar.
type Result struct {
	Buffer []byte
	Doc    []byte
}

// New creates a Loader. The tracker may be nil when the caller does not
// collect dependencies. Constructing a loader in only-binary mode is a
// programming error.
func New(
	fs ports.FileSystem,
	codec ports.ModuleCodec,
	compiler ports.Compiler,
	docs ports.DocLoader,
	tracker ports.DependencyTracker,
	logger ports.Logger,
	inv *domain.Invocation,
	mode domain.LoadMode,
) (*Loader, error) {
	if mode == domain.OnlyBinary {
		return nil, zerr.New("interface loader must not be constructed in only-binary mode")
	}
	return &Loader{
		fs:       fs,
		codec:    codec,
		compiler: compiler,
		docs:     docs,
		tracker:  tracker,
		logger:   logger,
		inv:      inv,
		mode:     mode,
	}, nil
}

// FindModule locates a loadable binary module for the named module in dir.
// moduleFilename and docFilename are the canonical artifact filenames; the
// interface path is derived from the module filename by extension
// replacement. The returned buffer's dependency state reflects the current
// filesystem.
func (l *Loader) FindModule(ctx context.Context, dir, moduleName, moduleFilename, docFilename string) (*Result, error) {
	modulePath := filepath.Join(dir, moduleFilename)
	interfacePath := replaceExt(modulePath, domain.InterfaceExt)

	// No interface, nothing to do; the caches are never consulted.
	if !l.fs.Exists(interfacePath) {
		return nil, domain.ErrModuleNotFound
	}

	ld := &load{
		l:             l,
		modulePath:    modulePath,
		interfacePath: interfacePath,
		moduleName:    moduleName,
	}

	buffer, err := ld.findOrBuildLoadableModule(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := l.docs.LoadDoc(filepath.Join(dir, docFilename))
	if err != nil {
		return nil, err
	}

	return &Result{Buffer: buffer, Doc: doc}, nil
}

// findOrBuildLoadableModule runs discovery and falls back to building from
// the interface on a miss.
func (ld *load) findOrBuildLoadableModule(ctx context.Context) ([]byte, error) {
	cachedOutputPath := CachedOutputPath(ld.l.inv.ModuleCachePath, ld.moduleName, ld.l.inv, ld.interfacePath)

	mod, err := ld.discover(cachedOutputPath)

	switch {
	case err == nil:
		// A prebuilt hit is the moment to drop a forwarding record into
		// the user cache so the next load stays out of the prebuilt dir.
		if mod.IsPrebuilt() {
			if werr := ld.writeForwardingModule(cachedOutputPath, mod); werr != nil {
				ld.l.logger.Warn("failed to write forwarding module, deferring load",
					"path", cachedOutputPath, "error", werr.Error())
				return nil, zerr.Wrap(domain.ErrNotSupported, "failed to write forwarding module")
			}
		}
		return mod.Buffer, nil

	case errors.Is(err, domain.ErrModuleNotFound):
		builder := NewBuilder(ld.l.fs, ld.l.codec, ld.l.compiler, ld.l.logger, ld.l.tracker,
			ld.l.inv, ld.interfacePath, ld.moduleName)
		buffer, berr := builder.Build(ctx, cachedOutputPath, true)
		if berr != nil {
			return nil, errors.Join(domain.ErrBuildFailed, berr)
		}
		return buffer, nil

	default:
		// Anything else fails this load and lets the next loader in the
		// chain diagnose it.
		return nil, err
	}
}

// BuildModule compiles an interface file straight to outPath, bypassing
// discovery. Used by the standalone build entry point.
func (l *Loader) BuildModule(ctx context.Context, interfacePath, moduleName, outPath string) error {
	builder := NewBuilder(l.fs, l.codec, l.compiler, l.logger, l.tracker, l.inv, interfacePath, moduleName)
	_, err := builder.Build(ctx, outPath, true)
	return err
}

// replaceExt swaps the extension of path for ext.
func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + ext
}
