package loader_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/modload/internal/core/domain"
	"go.trai.ch/modload/internal/engine/loader"
)

func TestExtractVersionAndFlags(t *testing.T) {
	t.Run("Valid Header", func(t *testing.T) {
		data := []byte("// modload-interface-format-version: 1.0\n" +
			"// modload-module-flags: -module-name Foo -target x86_64\n" +
			"module body\n")

		vers, args, err := loader.ExtractVersionAndFlags(data)
		require.NoError(t, err)
		assert.Equal(t, 1, vers.Major)
		assert.Equal(t, 0, vers.Minor)
		assert.Equal(t, []string{"-module-name", "Foo", "-target", "x86_64"}, args)
	})

	t.Run("Headers Anywhere In Buffer", func(t *testing.T) {
		data := []byte("leading text\n" +
			"// modload-module-flags: -module-name Foo\n" +
			"more text\n" +
			"// modload-interface-format-version: 1.3\n")

		vers, args, err := loader.ExtractVersionAndFlags(data)
		require.NoError(t, err)
		assert.Equal(t, 1, vers.Major)
		assert.Equal(t, 3, vers.Minor)
		assert.Equal(t, []string{"-module-name", "Foo"}, args)
	})

	t.Run("GNU Tokenization", func(t *testing.T) {
		data := []byte("// modload-interface-format-version: 1.0\n" +
			`// modload-module-flags: -module-name "My Module" -I '/opt/spaced dir' -DX=\"y\"` + "\n")

		_, args, err := loader.ExtractVersionAndFlags(data)
		require.NoError(t, err)
		assert.Equal(t, []string{"-module-name", "My Module", "-I", "/opt/spaced dir", `-DX="y"`}, args)
	})

	t.Run("Missing Version Line", func(t *testing.T) {
		data := []byte("// modload-module-flags: -module-name Foo\n")

		_, _, err := loader.ExtractVersionAndFlags(data)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrMalformedInterface))
	})

	t.Run("Missing Flags Line", func(t *testing.T) {
		data := []byte("// modload-interface-format-version: 1.0\n")

		_, _, err := loader.ExtractVersionAndFlags(data)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrMalformedInterface))
	})

	t.Run("Case Sensitive", func(t *testing.T) {
		data := []byte("// Modload-Interface-Format-Version: 1.0\n" +
			"// modload-module-flags: -module-name Foo\n")

		_, _, err := loader.ExtractVersionAndFlags(data)
		assert.True(t, errors.Is(err, domain.ErrMalformedInterface))
	})
}

func TestParseFormatVersion(t *testing.T) {
	t.Run("Major Minor", func(t *testing.T) {
		v, err := loader.ParseFormatVersion("1.7")
		require.NoError(t, err)
		assert.Equal(t, domain.FormatVersion{Major: 1, Minor: 7}, v)
	})

	t.Run("Major Only", func(t *testing.T) {
		v, err := loader.ParseFormatVersion("2")
		require.NoError(t, err)
		assert.Equal(t, domain.FormatVersion{Major: 2}, v)
	})

	t.Run("Extra Components Tolerated", func(t *testing.T) {
		v, err := loader.ParseFormatVersion("1.0.42")
		require.NoError(t, err)
		assert.Equal(t, 1, v.Major)
		assert.Equal(t, 0, v.Minor)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := loader.ParseFormatVersion("one.two")
		assert.True(t, errors.Is(err, domain.ErrMalformedInterface))
	})
}
