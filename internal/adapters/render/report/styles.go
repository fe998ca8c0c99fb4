package report

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	created lipgloss.Style
	failed  lipgloss.Style
	file    lipgloss.Style
	detail  lipgloss.Style
	empty   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true),
		header:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		created: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		failed:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		file:    lipgloss.NewStyle().Bold(true),
		detail:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		empty:   lipgloss.NewStyle().Faint(true),
	}
}
