// Package output writes command results in the formats haus supports:
// styled text for people, JSON, YAML and TOML for scripts.
package output

import (
	"strings"

	"github.com/arthur-debert/haus/pkg/errors"
)

// Format represents the output format type
type Format int

const (
	// FormatText renders styled text
	FormatText Format = iota
	// FormatJSON renders machine-readable JSON output
	FormatJSON
	// FormatYAML renders YAML documents
	FormatYAML
	// FormatTOML renders TOML documents
	FormatTOML
)

// Formats lists the names ParseFormat accepts
var Formats = []string{"text", "json", "yaml", "toml"}

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return "unknown"
	}
}

// ParseFormat parses a string into a Format value
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return FormatText, errors.Newf(errors.ErrInvalidInput,
			"unknown format %q (expected one of %s)", s, strings.Join(Formats, ", ")).
			WithDetail("format", s)
	}
}
