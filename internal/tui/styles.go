package tui

import "github.com/charmbracelet/lipgloss"

// Styles contains the lipgloss styles used by the playground.
type Styles struct {
	Title  lipgloss.Style
	Label  lipgloss.Style
	Muted  lipgloss.Style
	Input  lipgloss.Style
	Cursor lipgloss.Style
	Error  lipgloss.Style
}

// DefaultStyles builds the default playground styles.
func DefaultStyles() Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true),
		Label:  lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Input:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		Cursor: lipgloss.NewStyle().Reverse(true),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
}
