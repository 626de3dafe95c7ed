// Package ui provides the visual styling for the eq terminal interface.
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"eq/internal/task"
)

// Palette
var (
	ColorDoFirst  = lipgloss.Color("#e57373") // red: urgent + important
	ColorSchedule = lipgloss.Color("#64b5f6") // blue: important, not urgent
	ColorDelegate = lipgloss.Color("#ffd54f") // yellow: urgent, not important
	ColorDrop     = lipgloss.Color("#9e9e9e") // gray: neither

	ColorAccent  = lipgloss.Color("#8BC34A")
	ColorMuted   = lipgloss.Color("#6b7280")
	ColorError   = lipgloss.Color("#e53935")
	ColorDone    = lipgloss.Color("#4db6ac")
	ColorSurface = lipgloss.Color("#2a3850")
)

// Styles holds the prebuilt lipgloss styles used by the session views.
type Styles struct {
	Title     lipgloss.Style
	Header    lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
	Selected  lipgloss.Style
	Completed lipgloss.Style
	UserMsg   lipgloss.Style
	Assistant lipgloss.Style
	StatusBar lipgloss.Style
	Help      lipgloss.Style

	Pane       lipgloss.Style
	ActivePane lipgloss.Style
}

// NewStyles builds the default style set.
func NewStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(ColorAccent),
		Header:    lipgloss.NewStyle().Bold(true),
		Muted:     lipgloss.NewStyle().Foreground(ColorMuted),
		Error:     lipgloss.NewStyle().Foreground(ColorError),
		Selected:  lipgloss.NewStyle().Bold(true).Reverse(true),
		Completed: lipgloss.NewStyle().Foreground(ColorDone).Strikethrough(true),
		UserMsg:   lipgloss.NewStyle().Bold(true).Foreground(ColorAccent),
		Assistant: lipgloss.NewStyle().Bold(true).Foreground(ColorSchedule),
		StatusBar: lipgloss.NewStyle().Foreground(ColorMuted),
		Help:      lipgloss.NewStyle().Foreground(ColorMuted),

		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSurface).
			Padding(0, 1),
		ActivePane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Padding(0, 1),
	}
}

// QuadrantColor maps a quadrant to its display color.
func QuadrantColor(q task.Quadrant) lipgloss.Color {
	switch q {
	case task.DoFirst:
		return ColorDoFirst
	case task.Schedule:
		return ColorSchedule
	case task.Delegate:
		return ColorDelegate
	default:
		return ColorDrop
	}
}

// QuadrantStyle returns a bold header style in the quadrant's color.
func QuadrantStyle(q task.Quadrant) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(QuadrantColor(q))
}
