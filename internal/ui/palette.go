package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/temirov/coverui/internal/utils/flags"
)

const (
	colorModeAutoStringConstant         = "auto"
	colorModeAlwaysStringConstant       = "always"
	colorModeNeverStringConstant        = "never"
	unsupportedColorModeMessageConstant = "unsupported color mode"
	unsupportedColorModeErrorTemplate   = "%w: %q"
	insertedMarkerLiteralConstant       = ">"
	skippedMarkerLiteralConstant        = ">"
)

// ErrUnsupportedColorMode indicates a color mode outside of auto, always, and never.
var ErrUnsupportedColorMode = errors.New(unsupportedColorModeMessageConstant)

// ColorMode selects whether palette styling emits ANSI escape sequences.
type ColorMode string

// Supported color modes.
const (
	ColorModeAuto   ColorMode = ColorMode(colorModeAutoStringConstant)
	ColorModeAlways ColorMode = ColorMode(colorModeAlwaysStringConstant)
	ColorModeNever  ColorMode = ColorMode(colorModeNeverStringConstant)
)

// ColorModeChoices lists the accepted color mode values in display order.
func ColorModeChoices() []string {
	return []string{colorModeAutoStringConstant, colorModeAlwaysStringConstant, colorModeNeverStringConstant}
}

// ParseColorMode normalizes a user-provided color mode. Empty input selects ColorModeAuto.
func ParseColorMode(rawValue string) (ColorMode, error) {
	if len(strings.TrimSpace(rawValue)) == 0 {
		return ColorModeAuto, nil
	}
	matchedChoice, matched := flags.MatchChoice(rawValue, ColorModeChoices())
	if !matched {
		return "", fmt.Errorf(unsupportedColorModeErrorTemplate, ErrUnsupportedColorMode, rawValue)
	}
	return ColorMode(matchedChoice), nil
}

// Palette decorates message fragments for terminal display.
type Palette struct {
	bold       *color.Color
	red        *color.Color
	grey       *color.Color
	boldGreen  *color.Color
	boldYellow *color.Color
}

// DefaultPalette builds a palette that follows terminal detection.
func DefaultPalette() Palette {
	return NewPalette(ColorModeAuto)
}

// NewPalette builds a palette honoring the requested color mode.
// ColorModeAuto defers to color.NoColor, which reflects NO_COLOR and whether stdout is a terminal.
func NewPalette(mode ColorMode) Palette {
	palette := Palette{
		bold:       color.New(color.Bold),
		red:        color.New(color.FgRed),
		grey:       color.New(color.FgHiBlack),
		boldGreen:  color.New(color.Bold, color.FgGreen),
		boldYellow: color.New(color.Bold, color.FgYellow),
	}

	for _, styledColor := range palette.colors() {
		switch mode {
		case ColorModeAlways:
			styledColor.EnableColor()
		case ColorModeNever:
			styledColor.DisableColor()
		}
	}

	return palette
}

// Bold renders text in bold.
func (palette Palette) Bold(text string) string {
	return palette.render(palette.bold, text)
}

// Red renders text in red.
func (palette Palette) Red(text string) string {
	return palette.render(palette.red, text)
}

// Grey renders text in bright black.
func (palette Palette) Grey(text string) string {
	return palette.render(palette.grey, text)
}

// InsertedMarker renders the bold green marker that prefixes progress lines.
func (palette Palette) InsertedMarker() string {
	return palette.render(palette.boldGreen, insertedMarkerLiteralConstant)
}

// SkippedMarker renders the bold yellow marker that prefixes skipped items.
func (palette Palette) SkippedMarker() string {
	return palette.render(palette.boldYellow, skippedMarkerLiteralConstant)
}

func (palette Palette) render(styledColor *color.Color, text string) string {
	if styledColor == nil {
		return text
	}
	return styledColor.Sprint(text)
}

func (palette Palette) colors() []*color.Color {
	return []*color.Color{palette.bold, palette.red, palette.grey, palette.boldGreen, palette.boldYellow}
}
