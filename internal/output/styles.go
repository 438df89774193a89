package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals elsewhere.
var (
	// ColorCyan is used for identifiable nouns: component names, paths.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for the "added" file status.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "skipped" file status and warnings.
	ColorYellow = lipgloss.Color("220")

	// ColorBoldRed is used for the "failed" file status (matches ERROR level).
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (component names, paths).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome (prefixes, separators, descriptions).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// File status constants.
const (
	StatusAdded     = "added"
	StatusSkipped   = "skipped"
	StatusFailed    = "failed"
	StatusCopied    = "copied"
	StatusRenamed   = "renamed"
	StatusRewritten = "rewritten"
)

// StatusStyle returns the style for a file status. Unknown statuses return
// an unstyled default.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusAdded, StatusCopied:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusRenamed, StatusRewritten:
		return lipgloss.NewStyle().Foreground(ColorCyan)
	case StatusSkipped:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}
