package logger_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"go.trai.ch/modload/internal/adapters/logger"
)

func TestLogger(t *testing.T) {
	t.Run("Info", func(t *testing.T) {
		var buf strings.Builder
		log := logger.New()
		log.SetOutput(&buf)

		log.Info("loaded module", "module", "Foo")

		out := buf.String()
		assert.Contains(t, out, "level=INFO")
		assert.Contains(t, out, "loaded module")
		assert.Contains(t, out, "module=Foo")
	})

	t.Run("Warn", func(t *testing.T) {
		var buf strings.Builder
		log := logger.New()
		log.SetOutput(&buf)

		log.Warn("cache entry is stale")

		assert.Contains(t, buf.String(), "level=WARN")
	})

	t.Run("Error", func(t *testing.T) {
		var buf strings.Builder
		log := logger.New()
		log.SetOutput(&buf)

		log.Error(errors.New("boom"))

		out := buf.String()
		assert.Contains(t, out, "level=ERROR")
		assert.Contains(t, out, "boom")
	})

	t.Run("Debug Suppressed By Default", func(t *testing.T) {
		var buf strings.Builder
		log := logger.New()
		log.SetOutput(&buf)

		log.Debug("noisy detail")

		assert.Empty(t, buf.String())
	})
}
