package tui

import "github.com/charmbracelet/lipgloss"

// Simplified color palette - minimal and readable
var (
	primaryColor = lipgloss.Color("#0EA5E9") // Blue
	successColor = lipgloss.Color("#22C55E") // Green
	errorColor   = lipgloss.Color("#EF4444") // Red
	mutedColor   = lipgloss.Color("#64748B") // Gray
)

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	echoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E5E7EB"))

	errorLineStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	listingStyle = lipgloss.NewStyle().
			Foreground(primaryColor)

	loadingStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	// Footer styles - unobtrusive
	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	scrollInfoStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Bold(true)

	footerStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(mutedColor)
)
