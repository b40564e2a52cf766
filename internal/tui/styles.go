package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

var palette = struct {
	text, muted, accent, border, selection lipgloss.AdaptiveColor
}{
	text:      lipgloss.AdaptiveColor{Light: "#1F2933", Dark: "#E4E7EB"},
	muted:     lipgloss.AdaptiveColor{Light: "#7B8794", Dark: "#9AA5B1"},
	accent:    lipgloss.AdaptiveColor{Light: "#0B69A3", Dark: "#47A3F3"},
	border:    lipgloss.AdaptiveColor{Light: "#CBD2D9", Dark: "#3E4C59"},
	selection: lipgloss.AdaptiveColor{Light: "#D9E8F6", Dark: "#243B53"},
}

type styles struct {
	app, crumbs, header, subtitle lipgloss.Style
	user, search, empty           lipgloss.Style
	footer, status, help          lipgloss.Style
}

func newStyles() styles {
	base := lipgloss.NewStyle()
	return styles{
		app:      base.Padding(0, 1),
		crumbs:   base.Copy().Foreground(palette.muted),
		header:   base.Copy().Bold(true).Foreground(palette.text),
		subtitle: base.Copy().Faint(true),
		user:     base.Copy().Foreground(palette.accent),
		search:   base.Copy().Foreground(palette.text),
		empty:    base.Copy().Italic(true).Padding(1, 0),
		footer:   base.Copy().Foreground(palette.muted),
		status:   base.Copy().Foreground(palette.accent),
		help:     base.Copy().Faint(true),
	}
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.muted).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(palette.border).
		BorderBottom(true).
		Padding(0, 1)
	s.Cell = lipgloss.NewStyle().
		Padding(0, 1)
	s.Selected = lipgloss.NewStyle().
		Foreground(palette.text).
		Background(palette.selection)
	return s
}
