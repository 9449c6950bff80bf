package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme defines the colour palette used for terminal output.
type Theme struct {
	Primary lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Border  lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary: lipgloss.Color("#7C3AED"), // Purple
		Muted:   lipgloss.Color("#6C7086"), // Medium gray
		Success: lipgloss.Color("#40A02B"), // Green
		Warning: lipgloss.Color("#DF8E1D"), // Yellow
		Error:   lipgloss.Color("#D20F39"), // Red
		Border:  lipgloss.Color("#9CA0B0"), // Border gray
	}
}

// Styles contains pre-configured lipgloss styles bound to one writer.
type Styles struct {
	Info    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Header  lipgloss.Style
	Cell    lipgloss.Style
	Border  lipgloss.Style
}

// NewStyles creates styles for w. Without colour every style renders
// plain text.
func NewStyles(w io.Writer, theme *Theme, color bool) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.TrueColor)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Styles{
		Info: r.NewStyle().
			Foreground(theme.Primary),
		Success: r.NewStyle().
			Foreground(theme.Success),
		Warning: r.NewStyle().
			Foreground(theme.Warning),
		Error: r.NewStyle().
			Bold(true).
			Foreground(theme.Error),
		Muted: r.NewStyle().
			Foreground(theme.Muted),
		Header: r.NewStyle().
			Bold(true).
			Foreground(theme.Primary).
			Padding(0, 1),
		Cell: r.NewStyle().
			Padding(0, 1),
		Border: r.NewStyle().
			Foreground(theme.Border),
	}
}
