package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	submit  key.Binding
	prev    key.Binding
	next    key.Binding
	restart key.Binding
	save    key.Binding
	cancel  key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "analyze")),
		prev:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev")),
		next:    key.NewBinding(key.WithKeys("right", "l", " "), key.WithHelp("→/l", "next")),
		restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		save:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save card")),
		cancel:  key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.submit, k.cancel},
		{k.prev, k.next},
		{k.restart, k.save, k.quit},
	}
}
