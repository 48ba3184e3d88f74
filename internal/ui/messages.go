package ui

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/RFPCheck/internal/analysis"
	"github.com/yildizm/RFPCheck/internal/intake"
	"github.com/yildizm/RFPCheck/internal/loading"
)

// ErrMissingNavigationState is logged when the result view is reached
// without an outcome; the model redirects to intake instead.
var ErrMissingNavigationState = errors.New("result view opened without an analysis outcome")

// DropMsg hands files to a slot from outside the key handler, for example
// from the inbox watcher
type DropMsg struct {
	Slot  string
	Files []intake.File
}

type splashTimeoutMsg struct{}

type splashDoneMsg struct{}

type analysisDoneMsg struct {
	seq     int
	outcome *analysis.Outcome
	err     error
}

type factsLoadedMsg struct {
	gen   uint64
	facts []loading.Fact
	err   error
}

type rotateMsg struct {
	gen uint64
}

type tickMsg struct {
	gen uint64
}

// navigateMsg switches views. The outcome travels with the message and is
// the only way the result view receives data.
type navigateMsg struct {
	view    View
	outcome *analysis.Outcome
}

func rotateAfter(gen uint64, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return rotateMsg{gen: gen}
	})
}

func tickAfter(gen uint64, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func splashAfter(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msg
	})
}
