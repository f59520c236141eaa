// Package cli provides terminal output styling for command line tools.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme for terminal output.
type Theme struct {
	Primary lipgloss.Color // Main accent color
	Dim     lipgloss.Color // Dimmed/secondary text color
}

// DefaultTheme is the default teal theme.
var DefaultTheme = Theme{
	Primary: lipgloss.Color("#00d7af"),
	Dim:     lipgloss.Color("#6e7681"),
}

// Styles holds all styles derived from a theme.
type Styles struct {
	Header  lipgloss.Style // table headers
	Accent  lipgloss.Style // keys and names
	Dim     lipgloss.Style // secondary detail (sizes, timestamps)
	Success lipgloss.Style // confirmation lines
}

// NewStyles creates styles from a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Header:  lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Accent:  lipgloss.NewStyle().Foreground(t.Primary),
		Dim:     lipgloss.NewStyle().Foreground(t.Dim),
		Success: lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
	}
}

// Truncate shortens a string to the given display width, handling
// multi-byte characters correctly. Truncated strings end in an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	currentWidth := 0
	for i, r := range runes {
		w := lipgloss.Width(string(r))
		if currentWidth+w > width-1 {
			return string(runes[:i]) + "…"
		}
		currentWidth += w
	}
	return s
}
