package ui

import (
	"os"

	"github.com/enescakir/emoji"
)

// WriteFunc receives one fully formatted message per invocation.
type WriteFunc func(message string)

// MessageKind selects a template from a catalog.
type MessageKind string

// MessageWriter renders catalog messages either to a sink or back to the caller.
type MessageWriter interface {
	// Report formats the message identified by kind and writes it.
	Report(kind MessageKind, arguments ...string) error
	// Generate formats the message identified by kind and returns it without writing.
	Generate(kind MessageKind, arguments ...string) (string, error)
}

var _ MessageWriter = (*Formatter)(nil)

// Formatter supplies the write and emoji expansion primitives shared by catalogs.
// Its own Report and Generate recognize no kinds and do nothing.
type Formatter struct {
	writeFunc WriteFunc
	palette   Palette
}

// NewFormatter constructs a formatter around writeFunc, defaulting to standard output when nil.
func NewFormatter(writeFunc WriteFunc) *Formatter {
	return NewFormatterWithPalette(writeFunc, DefaultPalette())
}

// NewFormatterWithPalette constructs a formatter that decorates templates with the provided palette.
func NewFormatterWithPalette(writeFunc WriteFunc, palette Palette) *Formatter {
	if writeFunc == nil {
		writeFunc = NewStandardOutputWriteFunc(os.Stdout)
	}
	return &Formatter{writeFunc: writeFunc, palette: palette}
}

// Report is a no-op for the base formatter.
func (formatter *Formatter) Report(kind MessageKind, arguments ...string) error {
	return nil
}

// Generate is a no-op for the base formatter.
func (formatter *Formatter) Generate(kind MessageKind, arguments ...string) (string, error) {
	return "", nil
}

// Palette exposes the styling helpers used to build templates.
func (formatter *Formatter) Palette() Palette {
	if formatter == nil {
		return DefaultPalette()
	}
	return formatter.palette
}

// Format expands :shortcode: tokens into emoji glyphs. Unrecognized tokens are left untouched.
func (formatter *Formatter) Format(message string) string {
	return emoji.Parse(message)
}

// Write formats message and hands the result to the writer exactly once.
// A nil or zero-value formatter writes to standard output.
func (formatter *Formatter) Write(message string) {
	formatter.resolveWriteFunc()(formatter.Format(message))
}

func (formatter *Formatter) resolveWriteFunc() WriteFunc {
	if formatter == nil || formatter.writeFunc == nil {
		return NewStandardOutputWriteFunc(os.Stdout)
	}
	return formatter.writeFunc
}
