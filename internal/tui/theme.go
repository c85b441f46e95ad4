// Package tui renders view-model state for the terminal: lipgloss cards for
// the plain commands and a bubbletea model for the interactive explorer.
package tui

import "github.com/charmbracelet/lipgloss"

// Theme is the palette shared by every renderer.
type Theme struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Border    lipgloss.Color
}

var DefaultTheme = Theme{
	Primary:   lipgloss.Color("33"),
	Secondary: lipgloss.Color("36"),
	Muted:     lipgloss.Color("245"),
	Success:   lipgloss.Color("42"),
	Warning:   lipgloss.Color("214"),
	Error:     lipgloss.Color("196"),
	Border:    lipgloss.Color("240"),
}

type styles struct {
	title    lipgloss.Style
	subtle   lipgloss.Style
	accent   lipgloss.Style
	card     lipgloss.Style
	selected lipgloss.Style
	badge    lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		subtle:   lipgloss.NewStyle().Foreground(t.Muted),
		accent:   lipgloss.NewStyle().Foreground(t.Secondary),
		card:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Padding(0, 1),
		selected: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Primary).Padding(0, 1),
		badge:    lipgloss.NewStyle().Bold(true).Padding(0, 1),
	}
}
