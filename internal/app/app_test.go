package app_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/modload/internal/adapters/binmod"
	fsadapter "go.trai.ch/modload/internal/adapters/fs"
	"go.trai.ch/modload/internal/adapters/logger"
	"go.trai.ch/modload/internal/adapters/telemetry"
	"go.trai.ch/modload/internal/adapters/tracker"
	"go.trai.ch/modload/internal/app"
	"go.trai.ch/modload/internal/core/domain"
	"go.trai.ch/modload/internal/core/ports"
	"go.trai.ch/modload/internal/engine/loader"
)

type fakeCompiler struct {
	calls int
}

func (f *fakeCompiler) Compile(_ context.Context, _ *domain.SubInvocation) (*ports.CompileResult, error) {
	f.calls++
	return &ports.CompileResult{Payload: []byte("compiled")}, nil
}

func newTestApp(t *testing.T, comp ports.Compiler, inv *domain.Invocation) *app.App {
	t.Helper()

	log := logger.New()
	log.SetOutput(io.Discard)

	l, err := loader.New(fsadapter.NewOS(), binmod.NewCodec(), comp, fsadapter.NewDocLoader(),
		tracker.NewRecorder(), log, inv, domain.PreferBinary)
	require.NoError(t, err)

	return app.New(l, telemetry.NewNoop(), log)
}

func interfaceText(moduleName string) string {
	return "// modload-interface-format-version: 1.0\n" +
		"// modload-module-flags: -module-name " + moduleName + "\n"
}

func TestApp_Load(t *testing.T) {
	tmpDir := t.TempDir()
	dir := filepath.Join(tmpDir, "src")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Foo.interface"),
		[]byte(interfaceText("Foo")), 0o644))

	inv := &domain.Invocation{
		CompilerVersion: "test 1.0",
		ModuleCachePath: filepath.Join(tmpDir, "cache"),
	}
	comp := &fakeCompiler{}
	a := newTestApp(t, comp, inv)

	res, err := a.Load(context.Background(), dir, "Foo")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Buffer)
	assert.Equal(t, 1, comp.calls)

	// Warm load hits the cache.
	res2, err := a.Load(context.Background(), dir, "Foo")
	require.NoError(t, err)
	assert.Equal(t, res.Buffer, res2.Buffer)
	assert.Equal(t, 1, comp.calls)

	assert.NoError(t, a.Close())
}

func TestApp_LoadMissingModule(t *testing.T) {
	tmpDir := t.TempDir()

	inv := &domain.Invocation{ModuleCachePath: filepath.Join(tmpDir, "cache")}
	a := newTestApp(t, &fakeCompiler{}, inv)

	_, err := a.Load(context.Background(), tmpDir, "Ghost")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrModuleNotFound))
}

func TestApp_Build(t *testing.T) {
	tmpDir := t.TempDir()
	interfacePath := filepath.Join(tmpDir, "Foo.interface")
	require.NoError(t, os.WriteFile(interfacePath, []byte(interfaceText("Foo")), 0o644))

	outPath := filepath.Join(tmpDir, "out", "Foo.binmod")
	require.NoError(t, os.MkdirAll(filepath.Dir(outPath), 0o755))

	inv := &domain.Invocation{ModuleCachePath: filepath.Join(tmpDir, "cache")}
	a := newTestApp(t, &fakeCompiler{}, inv)

	require.NoError(t, a.Build(context.Background(), interfacePath, "Foo", outPath))
	assert.FileExists(t, outPath)
}
