package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF5F87", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	label lipgloss.Style
	err   lipgloss.Style
	help  lipgloss.Style
}

// NewPalette builds a palette from foreground colours for titles, field labels, errors and help text.
func NewPalette(title, label, err, help string) *Palette {
	return &Palette{
		title: NewBold(title).MarginBottom(1),
		label: NewBold(label),
		err:   NewBold(err),
		help:  NewEm(help),
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
