package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/RFPCheck/internal/emoji"
	"github.com/yildizm/RFPCheck/internal/logger"
	"github.com/yildizm/RFPCheck/internal/ui/components"
)

// mountLoading starts a loading display. Both timers and the facts load are
// tagged with the mount generation so anything arriving after unmount is
// dropped.
func (m *Model) mountLoading() tea.Cmd {
	gen := m.loading.Mount()
	m.minimumReached = !m.opts.EnforceMinimum && !m.standalone

	cmds := []tea.Cmd{
		rotateAfter(gen, m.loading.RotationPeriod()),
		tickAfter(gen, m.loading.TickPeriod()),
		m.spinner.Tick,
	}

	if m.opts.Facts != nil {
		m.loading.SetFacts(m.opts.Facts)
	} else {
		load, ctx, source := m.loadFacts, m.ctx, m.opts.FactsSource
		cmds = append(cmds, func() tea.Msg {
			facts, err := load(ctx, source)
			return factsLoadedMsg{gen: gen, facts: facts, err: err}
		})
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleFactsLoaded(msg factsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.loading.Generation() {
		return m, nil
	}
	if msg.err != nil {
		m.log.WarnWithFields("failed to load facts", []logger.Field{logger.Error(msg.err)})
		return m, nil
	}
	m.loading.SetFacts(msg.facts)
	return m, nil
}

func (m *Model) handleRotate(msg rotateMsg) (tea.Model, tea.Cmd) {
	if !m.loading.Rotate(msg.gen) {
		return m, nil
	}
	return m, rotateAfter(msg.gen, m.loading.RotationPeriod())
}

func (m *Model) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	if !m.loading.Tick(msg.gen) {
		return m, nil
	}
	if m.standalone && m.minimumReached {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tea.Batch(tickAfter(msg.gen, m.loading.TickPeriod()), m.showResultsWhenReady())
}

// handleMinimumReached is the loading presenter's completion callback. It
// runs inside Tick, on the update goroutine.
func (m *Model) handleMinimumReached() {
	m.minimumReached = true
	m.log.Debug("minimum loading time reached after %s", m.loading.Elapsed())
}

// showResultsWhenReady moves to the result view once the outcome is in and
// the loading screen has been up long enough
func (m *Model) showResultsWhenReady() tea.Cmd {
	if m.view != ViewLoading || m.outcome == nil || !m.minimumReached {
		return nil
	}
	outcome := m.outcome
	m.outcome = nil
	return m.navigate(ViewResults, outcome)
}

func (m *Model) handleLoadingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, m.keys.Cancel) {
		return m, nil
	}
	if m.standalone {
		m.quitting = true
		return m, tea.Quit
	}
	m.log.Info("analysis cancelled by user")
	m.cancelRequest()
	m.outcome = nil
	return m, m.navigate(ViewIntake, nil)
}

func (m *Model) renderLoading() string {
	s := m.styles

	var b strings.Builder
	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(s.Title.Render("Analyzing"))
	b.WriteString("\n\n")

	if fact, ok := m.loading.Current(); ok {
		card := s.Panel.Width(min(m.contentWidth(), 70)).Render(
			s.Subtitle.Render(emoji.GetEmoji("insight")+" Did you know?") + "\n\n" + s.Body.Render(fact.Text))
		b.WriteString(card)
		b.WriteString("\n\n")
	}

	if m.opts.EnforceMinimum || m.standalone {
		bar := components.NewProgressBar(min(m.contentWidth()-20, 40), s.Theme.Palette())
		bar.SetProgress(m.loading.Elapsed(), m.loading.Minimum())
		b.WriteString(bar.Render())
	}

	content := b.String()
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}
