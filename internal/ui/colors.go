package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title  lipgloss.Style
	artist lipgloss.Style
	button lipgloss.Style
	err    lipgloss.Style
	clock  lipgloss.Style
	help   lipgloss.Style
	frame  lipgloss.Style
}

// NewPalette builds a [Palette] from accent, ok, error, warning and muted colors.
func NewPalette(accent, ok, e, w, muted string) *Palette {
	return &Palette{
		title:  NewBold(accent),
		artist: NewEm(muted),
		button: NewBold(ok).Padding(0, 1),
		err:    NewBold(e),
		clock:  NewStyle(w),
		help:   NewEm(muted),
		frame:  lipgloss.NewStyle().Padding(1, 2),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
