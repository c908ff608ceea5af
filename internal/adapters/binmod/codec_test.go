package binmod_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/modload/internal/adapters/binmod"
	"go.trai.ch/modload/internal/core/domain"
)

func sampleDeps() []domain.Dependency {
	return []domain.Dependency{
		domain.ModTimeDependency("usr/include/foo.h", true, 99, 170000000),
		domain.HashDependency("/src/Foo.interface", false, 1024, 0xDEADBEEF),
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	codec := binmod.NewCodec()

	data, err := codec.EncodeModule("Foo", []byte("opaque payload"), sampleDeps())
	require.NoError(t, err)

	assert.True(t, codec.IsSerializedModule(data))
	require.NoError(t, codec.ValidateModule(data))

	name, err := codec.ModuleName(data)
	require.NoError(t, err)
	assert.Equal(t, "Foo", name)

	deps, err := codec.ExtractDependencies(data)
	require.NoError(t, err)
	assert.Equal(t, sampleDeps(), deps)

	payload, err := codec.Payload(data)
	require.NoError(t, err)
	assert.Equal(t, []byte("opaque payload"), payload)
}

func TestCodec_EmptyDeps(t *testing.T) {
	codec := binmod.NewCodec()

	data, err := codec.EncodeModule("Foo", []byte("p"), nil)
	require.NoError(t, err)

	deps, err := codec.ExtractDependencies(data)
	require.NoError(t, err)
	assert.Empty(t, deps)
}

func TestCodec_MagicProbe(t *testing.T) {
	codec := binmod.NewCodec()

	assert.False(t, codec.IsSerializedModule([]byte("path: /prebuilt/Foo.binmod\n")))
	assert.False(t, codec.IsSerializedModule(nil))
	assert.False(t, codec.IsSerializedModule(binmod.Magic[:4]))
	assert.True(t, codec.IsSerializedModule(binmod.Magic))
}

func TestCodec_Malformed(t *testing.T) {
	codec := binmod.NewCodec()

	t.Run("No Magic", func(t *testing.T) {
		err := codec.ValidateModule([]byte("garbage"))
		assert.True(t, errors.Is(err, domain.ErrMalformedModule))
	})

	t.Run("Truncated Header", func(t *testing.T) {
		err := codec.ValidateModule(binmod.Magic)
		assert.True(t, errors.Is(err, domain.ErrMalformedModule))
	})

	t.Run("Manifest Length Past Buffer", func(t *testing.T) {
		data, err := codec.EncodeModule("Foo", nil, nil)
		require.NoError(t, err)
		truncated := data[:len(binmod.Magic)+4+1]
		assert.True(t, errors.Is(codec.ValidateModule(truncated), domain.ErrMalformedModule))
	})

	t.Run("Corrupt Manifest", func(t *testing.T) {
		data, err := codec.EncodeModule("Foo", nil, nil)
		require.NoError(t, err)
		// Stomp on the manifest bytes without shrinking the buffer.
		for i := len(binmod.Magic) + 4; i < len(data); i++ {
			data[i] = 0xFF
		}
		assert.True(t, errors.Is(codec.ValidateModule(data), domain.ErrMalformedModule))
	})
}
