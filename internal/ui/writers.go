package ui

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/temirov/coverui/internal/utils"
)

// NewStandardOutputWriteFunc writes each message as its own line to writer, falling back to os.Stdout.
func NewStandardOutputWriteFunc(writer io.Writer) WriteFunc {
	if writer == nil {
		writer = os.Stdout
	}
	lineWriter := utils.NewFlushingWriter(writer)
	return func(message string) {
		fmt.Fprintln(lineWriter, message)
	}
}

// NewLoggerWriteFunc routes each message through logger as an info entry.
// When the logger discards info entries the message goes to fallback instead, or to os.Stdout when fallback is nil.
func NewLoggerWriteFunc(logger *zap.Logger, fallback WriteFunc) WriteFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	if fallback == nil {
		fallback = NewStandardOutputWriteFunc(os.Stdout)
	}
	return func(message string) {
		if !logger.Core().Enabled(zapcore.InfoLevel) {
			fallback(message)
			return
		}
		logger.Info(message)
	}
}
