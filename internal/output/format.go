package output

import (
	"fmt"
	"strings"
)

// OutputFormat selects how commands print their results.
type OutputFormat string

const (
	// FormatText prints trees, tables and notifications for people.
	FormatText OutputFormat = "text"

	// FormatYAML prints a YAML document.
	FormatYAML OutputFormat = "yaml"

	// FormatJSON prints an indented JSON document.
	FormatJSON OutputFormat = "json"
)

var formatNames = map[string]OutputFormat{
	"":     FormatText,
	"text": FormatText,
	"yaml": FormatYAML,
	"yml":  FormatYAML,
	"json": FormatJSON,
}

// String returns the string representation of the output format.
func (f OutputFormat) String() string {
	return string(f)
}

// Structured reports whether f is machine-readable.
func (f OutputFormat) Structured() bool {
	return f == FormatYAML || f == FormatJSON
}

// ParseOutputFormat parses an --output value, ignoring case. An empty value
// means text and "yml" is accepted for yaml.
func ParseOutputFormat(s string) (OutputFormat, error) {
	f, ok := formatNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("unknown output format %q", s)
	}
	return f, nil
}

// ValidFormats lists the accepted --output values.
func ValidFormats() []string {
	return []string{string(FormatText), string(FormatYAML), string(FormatJSON)}
}
