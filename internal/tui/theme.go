package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Help     lipgloss.Style
	Card     lipgloss.Style
	Empty    lipgloss.Style
	Error    lipgloss.Style
	Status   lipgloss.Style
}

func DefaultTheme() Theme {
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true),
		Subtitle: lipgloss.NewStyle().Faint(true),
		Label:    lipgloss.NewStyle().Bold(true).Width(8),
		Help:     lipgloss.NewStyle().Faint(true),
		Card: lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),
		Empty:  lipgloss.NewStyle().Italic(true).Padding(1, 2),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	}
}
