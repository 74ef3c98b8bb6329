package cmd

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// titleStyle for bold section headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// successStyle for success indicators
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// errorStyle for error indicators
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// relevanceHighStyle for high-relevance results
	relevanceHighStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("42"))

	// relevanceMediumStyle for medium-relevance results
	relevanceMediumStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("220"))

	// boxStyle for info boxes with rounded border
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)
)
