package ui

import "github.com/charmbracelet/lipgloss"

var (
	outlookBlue = lipgloss.Color("#0078D4")

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF"))

	BadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#D13438")).
			Bold(true).
			Padding(0, 1)

	EmptyBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#828282")).
			Padding(0, 1)

	UserStyle = lipgloss.NewStyle().
			Foreground(outlookBlue).
			Bold(true)

	MetaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#828282"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555"))

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(outlookBlue).
			Padding(0, 2)
)
