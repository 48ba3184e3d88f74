// Package components holds the render-only building blocks of the TUI
package components

import "github.com/charmbracelet/lipgloss"

// Palette is the subset of theme colors the components draw with. It is
// passed in rather than read from the ui package to avoid an import cycle.
type Palette struct {
	Primary     lipgloss.TerminalColor
	Affirmative lipgloss.TerminalColor
	Negative    lipgloss.TerminalColor
	Error       lipgloss.TerminalColor
	Border      lipgloss.TerminalColor
	Focus       lipgloss.TerminalColor
	Muted       lipgloss.TerminalColor
	Selected    lipgloss.TerminalColor
	Progress    lipgloss.TerminalColor
}

func color(c lipgloss.TerminalColor) lipgloss.TerminalColor {
	if c == nil {
		return lipgloss.NoColor{}
	}
	return c
}
