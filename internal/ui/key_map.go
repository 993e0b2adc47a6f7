package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	toggle   key.Binding
	back     key.Binding
	forward  key.Binding
	open     key.Binding
	submit   key.Binding
	cancel   key.Binding
	quit     key.Binding
	showHelp key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		toggle:   key.NewBinding(key.WithKeys(" ", "space", "p"), key.WithHelp("space/p", "play/pause")),
		back:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "rewind")),
		forward:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "forward")),
		open:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open")),
		submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play")),
		cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		showHelp: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.toggle, k.open, k.showHelp, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.toggle, k.back, k.forward},
		{k.open, k.submit, k.cancel},
		{k.showHelp, k.quit},
	}
}
