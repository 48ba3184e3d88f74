package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/RFPCheck/internal/inbox"
	"github.com/yildizm/RFPCheck/internal/intake"
	"github.com/yildizm/RFPCheck/internal/logger"
)

// Run starts the TUI and blocks until the user quits
func Run(opts Options) error {
	model := NewModel(opts)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(model.ctx))

	if opts.InboxDir != "" {
		watcher, err := inbox.New(opts.InboxDir, []string{RFPSlot, ProposalSlot}, inbox.WithLogger(model.log.WithComponent("inbox")))
		if err != nil {
			return fmt.Errorf("failed to watch inbox: %w", err)
		}
		ctx, cancel := context.WithCancel(model.ctx)
		defer cancel()
		go func() {
			err := watcher.Run(ctx, func(d inbox.Drop) {
				p.Send(DropMsg{Slot: d.Slot, Files: []intake.File{d.File}})
			})
			if err != nil {
				model.log.ErrorWithFields("inbox watcher stopped", []logger.Field{logger.Error(err)})
			}
		}()
	}

	_, err := p.Run()
	model.cancelRequest()
	return err
}
