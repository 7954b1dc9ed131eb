package tui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("#7D56F4")
	accentColor  = lipgloss.Color("#00D7FF")
	successColor = lipgloss.Color("#04B575")
	errorColor   = lipgloss.Color("#FF4B4B")
	mutedColor   = lipgloss.Color("#666666")
	borderColor  = lipgloss.Color("#383838")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	activePaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	childStyle    = lipgloss.NewStyle().Foreground(mutedColor)
	markerStyle   = lipgloss.NewStyle().Foreground(successColor).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(errorColor)
	statusStyle   = lipgloss.NewStyle().Foreground(mutedColor).Italic(true)
)
