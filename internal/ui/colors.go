package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// YouTube red for titles, Spotify green for success.
var styles = NewPalette("#CC0000", "#1DB954", "#FF5555", "#FFA500", "#626262")

// Palette holds the named [lipgloss.Style] values the views render with.
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

// NewPalette builds a stylesheet from title, success, error, warning, and
// help foreground colors.
func NewPalette(t, s, e, w, h string) *Palette {
	bold := func(fg string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(fg)).Bold(true)
	}

	return &Palette{
		title: bold(t).MarginBottom(1),
		ok:    bold(s),
		err:   bold(e),
		warn:  lipgloss.NewStyle().Foreground(lipgloss.Color(w)),
		help:  lipgloss.NewStyle().Foreground(lipgloss.Color(h)).Italic(true),
	}
}
