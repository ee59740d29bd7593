package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette for CLI output
var (
	PrimaryColor = lipgloss.Color("#00A8E8") // Blue - headers, borders
	SuccessColor = lipgloss.Color("#43BF6D") // Green - healthy readings
	WarningColor = lipgloss.Color("#FFA500") // Orange - disconnected probes
	ErrorColor   = lipgloss.Color("#FF5555") // Red - errors
	MutedColor   = lipgloss.Color("#626262") // Gray - labels, secondary info
	TextColor    = lipgloss.Color("#FFFFFF") // White - main content
)

// Layout constants
const (
	MinTerminalWidth = 60 // Minimum supported terminal width
	MaxContentWidth  = 80 // Maximum content width before capping
)

// Shared styles for CLI output
var (
	// TitleStyle is for the box header (e.g., "BOPI SENSOR STATE")
	TitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	// LabelStyle is for field labels (e.g., "pH value:")
	LabelStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// ValueStyle is for field values
	ValueStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	// DisconnectedStyle marks unplugged probes
	DisconnectedStyle = lipgloss.NewStyle().
				Foreground(WarningColor).
				Italic(true)

	// BoxStyle frames the sensor state render
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(0, 2)

	// ErrStyle is for error lines
	ErrStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)
)

// TerminalWidth returns the current terminal width, capped to the
// supported content range. Falls back to MaxContentWidth when stdout is
// not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return MaxContentWidth
	}
	if width < MinTerminalWidth {
		return MinTerminalWidth
	}
	if width > MaxContentWidth {
		return MaxContentWidth
	}
	return width
}
