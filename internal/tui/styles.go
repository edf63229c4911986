package tui

import "github.com/charmbracelet/lipgloss"

// Rendering styles for the widget form and the notification overlay.
var (
	appStyle   = lipgloss.NewStyle().Padding(1, 2)
	titleStyle = lipgloss.NewStyle().Bold(true)
	helpStyle  = lipgloss.NewStyle().Faint(true)

	// errorStyle marks error notification titles and clipboard failures.
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

	// overlayBoxStyle frames the live notification while it owns the keyboard.
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
)
