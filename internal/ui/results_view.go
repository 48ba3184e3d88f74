package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/RFPCheck/internal/emoji"
	"github.com/yildizm/RFPCheck/internal/ui/components"
)

func (m *Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.results.Empty() {
		if key.Matches(msg, m.keys.Back) || msg.Type == tea.KeyEnter {
			return m, m.backToIntake()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		return m, m.backToIntake()
	case key.Matches(msg, m.keys.Up):
		if m.resultCursor > 0 {
			m.resultCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.resultCursor < m.results.Len()-1 {
			m.resultCursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		m.results.ToggleOne(m.resultCursor)
	case key.Matches(msg, m.keys.ToggleAll):
		m.results.ToggleAll()
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	m.refreshResults()
	return m, nil
}

// backToIntake leaves the result view for a fresh intake
func (m *Model) backToIntake() tea.Cmd {
	m.coord.Reset()
	m.clearSlots()
	return m.navigate(ViewIntake, nil)
}

// refreshResults re-renders the cards into the viewport and scrolls the
// selected card into view
func (m *Model) refreshResults() {
	if m.results.Empty() {
		m.viewport.SetContent("")
		return
	}

	palette := m.styles.Theme.Palette()
	cards := make([]string, 0, m.results.Len())
	line, start, end := 0, 0, 0
	for i := 0; i < m.results.Len(); i++ {
		item, _ := m.results.Item(i)
		card := components.CriterionCard{
			Result:   item,
			Expanded: m.results.Expanded(i),
			Selected: i == m.resultCursor,
			Width:    m.contentWidth(),
			Palette:  palette,
		}.Render()
		height := strings.Count(card, "\n") + 1
		if i == m.resultCursor {
			start, end = line, line+height
		}
		line += height
		cards = append(cards, card)
	}
	m.viewport.SetContent(strings.Join(cards, "\n"))

	if start < m.viewport.YOffset {
		m.viewport.SetYOffset(start)
	} else if end > m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(end - m.viewport.Height)
	}
}

func (m *Model) renderResults() string {
	s := m.styles

	var b strings.Builder
	b.WriteString(s.Title.Render(emoji.GetEmoji("statistics") + " " + ResultTitle))
	b.WriteString("\n\n")

	if m.results.Empty() {
		b.WriteString(s.Muted.Render(EmptyResultMessage))
		b.WriteString("\n\n")
		b.WriteString(s.ButtonFocused.Render(emoji.GetEmoji("back") + " " + BackLabel))
		return b.String()
	}

	met, notMet := m.results.Outcome().Counts()
	b.WriteString(s.Button.Render("[a] " + m.results.ToggleAllLabel()))
	b.WriteString("  ")
	b.WriteString(s.Muted.Render(fmt.Sprintf("%d of %d criteria met", met, met+notMet)))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(s.Muted.Render("[b] " + BackLabel))
	return b.String()
}
