package ui

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/RFPCheck/internal/config"
	"github.com/yildizm/RFPCheck/internal/emoji"
	"github.com/yildizm/RFPCheck/internal/intake"
	"github.com/yildizm/RFPCheck/internal/logger"
	"github.com/yildizm/RFPCheck/internal/submission"
	"github.com/yildizm/RFPCheck/internal/ui/components"
)

func (m *Model) handleIntakeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m, m.submit()
	case key.Matches(msg, m.keys.Next):
		m.focus = (m.focus + 1) % focusCount
		return m, m.applyFocus()
	case key.Matches(msg, m.keys.Prev):
		m.focus = (m.focus + focusCount - 1) % focusCount
		return m, m.applyFocus()
	}

	if m.focus == focusButton {
		if msg.Type == tea.KeyEnter || msg.String() == " " {
			return m, m.submit()
		}
		return m, nil
	}

	slot := m.focusedSlot()
	switch {
	case key.Matches(msg, m.keys.Add):
		m.addPaths(slot, m.input.Value())
		m.input.Reset()
		return m, nil
	case key.Matches(msg, m.keys.Remove):
		m.removeSelected()
		return m, nil
	case key.Matches(msg, m.keys.FileUp):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, m.keys.FileDown):
		m.moveCursor(1)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.inputErr = ""
	return m, cmd
}

func (m *Model) handleDrop(msg DropMsg) (tea.Model, tea.Cmd) {
	slot := m.slotByName(msg.Slot)
	if slot == nil {
		m.log.Warn("drop for unknown slot %q", msg.Slot)
		return m, nil
	}
	// Arrivals while a request is out still land in the slot; the running
	// request already read its documents.
	slot.Submit(msg.Files)
	if errMsg := slot.Error(); errMsg != "" {
		m.log.WarnWithFields("drop rejected", []logger.Field{logger.Slot(slot.Name()), logger.F("reason", errMsg)})
	}
	return m, nil
}

// submit starts an analysis. It does nothing while a request is
// outstanding and raises the missing-documents notice without a request
// when either slot is empty.
func (m *Model) submit() tea.Cmd {
	if m.inFlight || !m.coord.CanSubmit() {
		return nil
	}
	if !m.coord.Ready() {
		m.notice = submission.MissingDocumentsMessage
		m.log.Warn("submit blocked: %s", submission.MissingDocumentsMessage)
		return nil
	}

	m.seq++
	m.inFlight = true
	m.outcome = nil
	m.requestCtx, m.cancel = context.WithCancel(m.ctx)

	return tea.Batch(m.analyzeCmd(), m.navigate(ViewLoading, nil))
}

func (m *Model) analyzeCmd() tea.Cmd {
	coord, seq, ctx := m.coord, m.seq, m.requestCtx
	return func() tea.Msg {
		outcome, err := coord.Submit(ctx)
		return analysisDoneMsg{seq: seq, outcome: outcome, err: err}
	}
}

func (m *Model) handleAnalysisDone(msg analysisDoneMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.seq || !m.inFlight {
		m.log.Debug("dropping stale response for request %d", msg.seq)
		return m, nil
	}
	m.cancelRequest()

	if msg.err != nil {
		m.notice = FailureMessage + "\n\n" + msg.err.Error()
		return m, m.navigate(ViewIntake, nil)
	}

	m.outcome = msg.outcome
	return m, m.showResultsWhenReady()
}

func (m *Model) cancelRequest() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.inFlight = false
}

func (m *Model) busy() bool {
	return m.inFlight || m.coord.State() == submission.Pending
}

func (m *Model) applyFocus() tea.Cmd {
	if m.focus == focusButton {
		m.input.Blur()
		return nil
	}
	m.clampCursor()
	return m.input.Focus()
}

func (m *Model) focusedSlot() *intake.Slot {
	if m.focus == focusProposal {
		return m.proposal
	}
	return m.rfp
}

func (m *Model) slotByName(name string) *intake.Slot {
	switch name {
	case RFPSlot:
		return m.rfp
	case ProposalSlot:
		return m.proposal
	default:
		return nil
	}
}

func (m *Model) slotListener(name string) intake.Listener {
	return func(files []intake.File) {
		m.log.InfoWithFields("files admitted", []logger.Field{logger.Slot(name), logger.Count(len(files))})
	}
}

func (m *Model) addPaths(slot *intake.Slot, raw string) {
	paths := splitPaths(raw)
	if len(paths) == 0 {
		return
	}

	files := make([]intake.File, 0, len(paths))
	for _, p := range paths {
		f, err := intake.NewFile(config.ExpandPath(p))
		if err != nil {
			m.inputErr = err.Error()
			m.log.Debug("cannot add %s: %v", p, err)
			return
		}
		files = append(files, f)
	}

	m.inputErr = ""
	slot.Submit(files)
	if errMsg := slot.Error(); errMsg != "" {
		m.log.WarnWithFields("files rejected", []logger.Field{logger.Slot(slot.Name()), logger.F("reason", errMsg)})
	}
}

func (m *Model) removeSelected() {
	if m.focus == focusButton {
		return
	}
	slot := m.focusedSlot()
	files := slot.Files()
	i := m.cursor[m.focus]
	if i < 0 || i >= len(files) {
		return
	}
	slot.Remove(files[i].Name)
	m.log.InfoWithFields("file removed", []logger.Field{logger.Slot(slot.Name()), logger.F("file", files[i].Name)})
	m.clampCursor()
}

func (m *Model) moveCursor(delta int) {
	if m.focus == focusButton {
		return
	}
	m.cursor[m.focus] += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.focus == focusButton {
		return
	}
	n := m.focusedSlot().Len()
	c := m.cursor[m.focus]
	if c >= n {
		c = n - 1
	}
	if c < 0 {
		c = 0
	}
	m.cursor[m.focus] = c
}

// clearSlots starts the intake over after a finished analysis
func (m *Model) clearSlots() {
	m.rfp.Clear()
	m.proposal.Clear()
	m.cursor = [2]int{}
	m.focus = focusRFP
	m.input.Reset()
	m.inputErr = ""
}

// splitPaths splits pasted input into paths. Terminals paste dragged files
// either quoted or with backslash-escaped spaces.
func splitPaths(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if _, err := os.Stat(raw); err == nil {
		return []string{raw}
	}

	var (
		paths   []string
		current strings.Builder
		quote   rune
		escaped bool
	)
	flush := func() {
		if current.Len() > 0 {
			paths = append(paths, current.String())
			current.Reset()
		}
	}

	for _, r := range raw {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '\\':
			escaped = true
		case r == '\'' || r == '"':
			quote = r
		case r == ' ' || r == '\t':
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return paths
}

func (m *Model) renderIntake() string {
	s := m.styles
	width := m.contentWidth()
	palette := s.Theme.Palette()

	var b strings.Builder
	b.WriteString(s.Title.Render(HeaderTitle))
	b.WriteString("\n")
	b.WriteString(s.Muted.Render(HeaderSubtitle))
	b.WriteString("\n\n")

	boxes := make([]string, 0, 2)
	for i, slot := range []*intake.Slot{m.rfp, m.proposal} {
		area := focusArea(i)
		boxWidth := width
		if width >= 100 {
			boxWidth = width/2 - 1
		}
		boxes = append(boxes, components.SlotBox{
			Slot:    slot,
			Focused: m.focus == area,
			Cursor:  m.cursor[i],
			Width:   boxWidth,
			Palette: palette,
		}.Render())
	}
	if width >= 100 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes[0], "  ", boxes[1]))
	} else {
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, boxes...))
	}
	b.WriteString("\n\n")

	if m.focus != focusButton {
		b.WriteString(s.Subtitle.Render("Add to " + m.focusedSlot().Title()))
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
		if m.inputErr != "" {
			b.WriteString(s.Error.Render(emoji.GetEmoji("error") + " " + m.inputErr))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(m.renderButton())
	return b.String()
}

func (m *Model) renderButton() string {
	s := m.styles
	if m.busy() {
		return s.ButtonDisabled.Render(emoji.GetEmoji("hourglass") + " " + AnalyzingLabel)
	}
	label := emoji.GetEmoji("rocket") + " " + AnalyzeLabel
	if m.focus == focusButton {
		return s.ButtonFocused.Render(label)
	}
	return s.Button.Render(label)
}

func (m *Model) renderNotice() string {
	s := m.styles
	content := s.Warning.Render(emoji.GetEmoji("warning")+" Notice") + "\n\n" +
		s.Body.Render(m.notice) + "\n\n" +
		s.Muted.Render("Press enter to continue")

	box := s.Notice.Width(min(m.contentWidth(), 70)).Render(content)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}
