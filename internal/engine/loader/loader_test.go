package loader_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/modload/internal/adapters/binmod"
	"go.trai.ch/modload/internal/core/domain"
	"go.trai.ch/modload/internal/core/ports"
	"go.trai.ch/modload/internal/engine/loader"
)

// stubCompiler is a deterministic compiler double that counts invocations.
type stubCompiler struct {
	mu      sync.Mutex
	calls   int
	payload []byte
	deps    []string
	err     error
}

func (s *stubCompiler) Compile(_ context.Context, _ *domain.SubInvocation) (*ports.CompileResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &ports.CompileResult{Payload: s.payload, Dependencies: s.deps}, nil
}

func (s *stubCompiler) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// loaderWorld is an end-to-end fixture: a module directory, a dependency
// file the stub compiler reports, and empty caches.
type loaderWorld struct {
	tmpDir   string
	dir      string
	cacheDir string
	depFile  string
	inv      *domain.Invocation
	comp     *stubCompiler
}

func newLoaderWorld(t *testing.T) *loaderWorld {
	t.Helper()
	tmpDir := t.TempDir()

	w := &loaderWorld{
		tmpDir:   tmpDir,
		dir:      filepath.Join(tmpDir, "src"),
		cacheDir: filepath.Join(tmpDir, "cache"),
		depFile:  filepath.Join(tmpDir, "dep.h"),
	}
	require.NoError(t, os.MkdirAll(w.dir, 0o755))
	require.NoError(t, os.WriteFile(w.depFile, []byte("int dep;"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(w.dir, "Foo.interface"),
		[]byte(interfaceText("Foo", "1.0")), 0o644))

	w.inv = &domain.Invocation{
		CompilerVersion: "test-compiler 1.0",
		TargetArch:      "x86_64",
		ModuleCachePath: w.cacheDir,
	}
	w.comp = &stubCompiler{payload: []byte("compiled payload"), deps: []string{w.depFile}}
	return w
}

func (w *loaderWorld) findModule(t *testing.T) (*loader.Result, error) {
	t.Helper()
	l, _ := newTestLoader(t, w.comp, w.inv, domain.PreferBinary)
	return l.FindModule(context.Background(), w.dir, "Foo", "Foo.binmod", "Foo.docmod")
}

func (w *loaderWorld) cacheEntries(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(w.cacheDir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// S1: cold build, then a warm load with no rebuild.
func TestFindModule_ColdBuildThenCacheHit(t *testing.T) {
	w := newLoaderWorld(t)

	res, err := w.findModule(t)
	require.NoError(t, err)
	require.Equal(t, 1, w.comp.callCount())

	entries := w.cacheEntries(t)
	require.Len(t, entries, 1)
	assert.Regexp(t, `^Foo-[0-9a-z]+\.binmod$`, entries[0])

	res2, err := w.findModule(t)
	require.NoError(t, err)
	assert.Equal(t, 1, w.comp.callCount(), "second load must not rebuild")
	assert.Equal(t, res.Buffer, res2.Buffer)
}

// S2: touching a recorded dependency invalidates the cache entry by mtime.
func TestFindModule_StaleCacheByMTime(t *testing.T) {
	w := newLoaderWorld(t)

	_, err := w.findModule(t)
	require.NoError(t, err)
	require.Equal(t, 1, w.comp.callCount())

	// Advance mtime without changing size.
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(w.depFile, future, future))

	_, err = w.findModule(t)
	require.NoError(t, err)
	assert.Equal(t, 2, w.comp.callCount(), "stale dependency forces a rebuild")
	assert.Len(t, w.cacheEntries(t), 1, "the rebuild overwrites the old entry")
}

// S3: a prebuilt hit writes a forwarding module into the user cache, and
// the next load goes through it.
func TestFindModule_PrebuiltHitWithForwarding(t *testing.T) {
	w := newLoaderWorld(t)

	// Relocate the module directory under the SDK.
	sdkRoot := filepath.Join(w.tmpDir, "sdk")
	sdkDir := filepath.Join(sdkRoot, "modules")
	require.NoError(t, os.MkdirAll(sdkDir, 0o755))
	interfacePath := filepath.Join(sdkDir, "Foo.interface")
	require.NoError(t, os.WriteFile(interfacePath, []byte(interfaceText("Foo", "1.0")), 0o644))

	prebuiltDir := filepath.Join(w.tmpDir, "prebuilt")
	require.NoError(t, os.MkdirAll(prebuiltDir, 0o755))

	deps := []domain.Dependency{
		domain.ModTimeDependency(interfacePath, false, sizeOf(t, interfacePath), mtimeOf(t, interfacePath)),
	}
	prebuilt, err := binmod.NewCodec().EncodeModule("Foo", []byte("prebuilt payload"), deps)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(prebuiltDir, "Foo.binmod"), prebuilt, 0o644))

	w.inv.SDKRoot = sdkRoot
	w.inv.PrebuiltCachePath = prebuiltDir
	require.NoError(t, os.MkdirAll(w.cacheDir, 0o755))

	l, _ := newTestLoader(t, w.comp, w.inv, domain.PreferBinary)
	res, err := l.FindModule(context.Background(), sdkDir, "Foo", "Foo.binmod", "Foo.docmod")
	require.NoError(t, err)
	assert.Equal(t, prebuilt, res.Buffer)
	assert.Equal(t, 0, w.comp.callCount(), "prebuilt hit builds nothing")

	// A forwarding record now sits in the user cache.
	entries := w.cacheEntries(t)
	require.Len(t, entries, 1)
	data, err := os.ReadFile(filepath.Join(w.cacheDir, entries[0]))
	require.NoError(t, err)
	assert.False(t, binmod.NewCodec().IsSerializedModule(data))

	fwd, err := loader.ParseForwardingModule(data)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(prebuiltDir, "Foo.binmod"), fwd.UnderlyingPath)
	require.NotEmpty(t, fwd.Dependencies)
	assert.Equal(t, fwd.UnderlyingPath, fwd.Dependencies[0].Path,
		"the underlying module is the forwarding record's first dependency")

	// The follow-up load resolves through the forwarding record.
	l2, _ := newTestLoader(t, w.comp, w.inv, domain.PreferBinary)
	res2, err := l2.FindModule(context.Background(), sdkDir, "Foo", "Foo.binmod", "Foo.docmod")
	require.NoError(t, err)
	assert.Equal(t, prebuilt, res2.Buffer)
	assert.Equal(t, 0, w.comp.callCount())
}

// S4: an adjacent binary module defers to the sibling loader.
func TestFindModule_AdjacentBinaryDefers(t *testing.T) {
	w := newLoaderWorld(t)

	adjacent, err := binmod.NewCodec().EncodeModule("Foo", []byte("adjacent"), nil)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(w.dir, "Foo.binmod"), adjacent, 0o644))

	_, err = w.findModule(t)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotSupported))
	assert.Equal(t, 0, w.comp.callCount(), "no build happens")
	assert.Empty(t, w.cacheEntries(t), "no cache entry is written")
}

// S5: the interface embeds a different module name than the caller asked
// for.
func TestFindModule_ModuleNameMismatch(t *testing.T) {
	w := newLoaderWorld(t)
	require.NoError(t, os.WriteFile(filepath.Join(w.dir, "Foo.interface"),
		[]byte(interfaceText("Bar", "1.0")), 0o644))

	_, err := w.findModule(t)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBuildFailed))
	assert.True(t, errors.Is(err, domain.ErrModuleNameMismatch))
	assert.Empty(t, w.cacheEntries(t))
}

// S6: an interface from a future major format version cannot be built.
func TestFindModule_UnsupportedMajorVersion(t *testing.T) {
	w := newLoaderWorld(t)
	require.NoError(t, os.WriteFile(filepath.Join(w.dir, "Foo.interface"),
		[]byte(interfaceText("Foo", "2.0")), 0o644))

	_, err := w.findModule(t)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBuildFailed))
	assert.True(t, errors.Is(err, domain.ErrUnsupportedFormatVersion))
	assert.Empty(t, w.cacheEntries(t))
}

func TestFindModule_NoInterface(t *testing.T) {
	w := newLoaderWorld(t)
	require.NoError(t, os.Remove(filepath.Join(w.dir, "Foo.interface")))

	_, err := w.findModule(t)
	assert.True(t, errors.Is(err, domain.ErrModuleNotFound))
	assert.Equal(t, 0, w.comp.callCount())
}

func TestFindModule_LoadsDocSidecar(t *testing.T) {
	w := newLoaderWorld(t)
	require.NoError(t, os.WriteFile(filepath.Join(w.dir, "Foo.docmod"), []byte("docs"), 0o644))

	res, err := w.findModule(t)
	require.NoError(t, err)
	assert.Equal(t, []byte("docs"), res.Doc)
}

func TestFindModule_EditedInterfaceReusesCacheSlot(t *testing.T) {
	w := newLoaderWorld(t)

	_, err := w.findModule(t)
	require.NoError(t, err)
	first := w.cacheEntries(t)
	require.Len(t, first, 1)

	// Editing the interface changes its mtime, not the cache key: the
	// rebuild lands in the same slot.
	require.NoError(t, os.WriteFile(filepath.Join(w.dir, "Foo.interface"),
		[]byte(interfaceText("Foo", "1.0")+"// trailing comment\n"), 0o644))

	_, err = w.findModule(t)
	require.NoError(t, err)
	assert.Equal(t, 2, w.comp.callCount())
	assert.Equal(t, first, w.cacheEntries(t))
}

func TestFindModule_CompilerErrorSurfacesAsBuildFailure(t *testing.T) {
	w := newLoaderWorld(t)
	w.comp.err = errors.New("unresolved identifier in interface")

	_, err := w.findModule(t)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBuildFailed))
	assert.True(t, errors.Is(err, domain.ErrSubCompilationFailed))
}

func TestNew_RejectsOnlyBinaryMode(t *testing.T) {
	w := newLoaderWorld(t)
	_, err := loader.New(nil, nil, w.comp, nil, nil, nil, w.inv, domain.OnlyBinary)
	assert.Error(t, err)
}
