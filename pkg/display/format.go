// Package display renders command results for the terminal and for
// machine consumption. It supports rich terminal output, plain text,
// JSON, and YAML, with automatic detection based on the output device.
package display

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format represents the output format type.
type Format int

const (
	// FormatAuto picks FormatTerm or FormatText based on terminal
	// capabilities.
	FormatAuto Format = iota
	// FormatTerm renders rich terminal output with colors and styling.
	FormatTerm
	// FormatText renders plain text output without any styling.
	FormatText
	// FormatJSON renders machine-readable JSON output.
	FormatJSON
	// FormatYAML renders machine-readable YAML output.
	FormatYAML
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatTerm:
		return "term"
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// ParseFormat parses a string into a Format value.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return FormatAuto, nil
	case "term", "terminal":
		return FormatTerm, nil
	case "text", "plain":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatAuto, fmt.Errorf("unknown format: %s", s)
	}
}

// Detect resolves FormatAuto against the environment and the output
// device. Other formats pass through unchanged.
func Detect(f Format, output *os.File) Format {
	if f != FormatAuto {
		return f
	}

	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}

	// Piped or redirected output gets plain text.
	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return FormatText
	}

	if termenv.ColorProfile() == termenv.Ascii {
		return FormatText
	}

	return FormatTerm
}
