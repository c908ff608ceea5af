package compiler

import (
	"strings"

	"go.trai.ch/modload/internal/core/ports"
)

// logWriter streams subprocess output lines to the logger.
type logWriter struct {
	logger ports.Logger
	level  string
	buf    strings.Builder
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	for {
		s := w.buf.String()
		idx := strings.IndexByte(s, '\n')
		if idx < 0 {
			break
		}
		w.emit(s[:idx])
		w.buf.Reset()
		w.buf.WriteString(s[idx+1:])
	}
	return len(p), nil
}

func (w *logWriter) emit(line string) {
	if line == "" {
		return
	}
	if w.level == "warn" {
		w.logger.Warn(line)
		return
	}
	w.logger.Info(line)
}
