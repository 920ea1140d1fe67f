package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	row        lipgloss.Style
	selected   lipgloss.Style
	muted      lipgloss.Style
	label      lipgloss.Style
	focusLabel lipgloss.Style
	form       lipgloss.Style
	info       lipgloss.Style
	success    lipgloss.Style
	failure    lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		row:        lipgloss.NewStyle().PaddingLeft(2),
		selected:   lipgloss.NewStyle().PaddingLeft(1).Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
		muted:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		label:      lipgloss.NewStyle().Width(8).Foreground(lipgloss.Color("245")),
		focusLabel: lipgloss.NewStyle().Width(8).Bold(true).Foreground(lipgloss.Color("212")),
		form:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1),
		info:       lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		success:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		failure:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	}
}
