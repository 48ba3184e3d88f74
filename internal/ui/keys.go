package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Next      key.Binding
	Prev      key.Binding
	Up        key.Binding
	Down      key.Binding
	FileUp    key.Binding
	FileDown  key.Binding
	Add       key.Binding
	Remove    key.Binding
	Submit    key.Binding
	Toggle    key.Binding
	ToggleAll key.Binding
	Back      key.Binding
	Dismiss   key.Binding
	Cancel    key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		FileUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous file"),
		),
		FileDown: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next file"),
		),
		Add: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "add file"),
		),
		Remove: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "remove file"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "analyze"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "expand"),
		),
		ToggleAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "expand/collapse all"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "esc"),
			key.WithHelp("b", "main page"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("enter", "esc"),
			key.WithHelp("enter", "dismiss"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// bindings adapts a fixed binding list to help.KeyMap
type bindings []key.Binding

func (b bindings) ShortHelp() []key.Binding { return b }

func (b bindings) FullHelp() [][]key.Binding { return [][]key.Binding{b} }

// helpFor returns the bindings relevant to the active view
func (k keyMap) helpFor(view View, notice bool) bindings {
	if notice {
		return bindings{k.Dismiss, k.Quit}
	}
	switch view {
	case ViewIntake:
		return bindings{k.Next, k.Add, k.FileUp, k.FileDown, k.Remove, k.Submit, k.Quit}
	case ViewLoading:
		return bindings{k.Cancel, k.Quit}
	case ViewResults:
		return bindings{k.Up, k.Down, k.Toggle, k.ToggleAll, k.Back, k.Quit}
	case ViewNotFound:
		return bindings{k.Back, k.Quit}
	default:
		return bindings{k.Quit}
	}
}
