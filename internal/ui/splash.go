package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// handleSplashTimeout blanks the splash and schedules intake after the
// buffer
func (m *Model) handleSplashTimeout() (tea.Model, tea.Cmd) {
	if m.view != ViewSplash {
		return m, nil
	}
	m.splashFading = true
	return m, splashAfter(m.opts.SplashBuffer, splashDoneMsg{})
}

func (m *Model) renderSplash() string {
	if m.splashFading {
		return ""
	}
	s := m.styles
	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Render(SplashTitle),
		"",
		s.Subtitle.Render(SplashSubtitle),
		"",
		s.Muted.Render("press any key to continue"),
	)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

func (m *Model) renderNotFound() string {
	s := m.styles
	content := lipgloss.JoinVertical(lipgloss.Center,
		s.NotFound.Render(NotFoundMessage),
		"",
		s.Muted.Render("Press b to go to the main page"),
	)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}
