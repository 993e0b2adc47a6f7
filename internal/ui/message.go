package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// callbackMsg carries one queued player callback into Update.
type callbackMsg func()

var _ tea.Msg = callbackMsg(nil)

// waitForCallback blocks on the loop and hands the next callback to Update.
func (m *Model) waitForCallback() tea.Cmd {
	return func() tea.Msg {
		fn, ok := <-m.loop.Next()
		if !ok {
			return nil
		}
		return callbackMsg(fn)
	}
}
