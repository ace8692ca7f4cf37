package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/d-kuro/termfolio/internal/terminal"
)

// Banner is the welcome shown at the top of the scrollback.
type Banner struct {
	Name string
	Role string
}

// Render implements terminal.Output.
func (b Banner) Render(width int) string {
	width = normalizeWidth(width)
	box := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(blueColor).
		Padding(0, 2).
		Foreground(blueColor).
		Bold(true)

	lines := []string{strings.ToUpper(b.Name)}
	if b.Role != "" {
		lines = append(lines, mutedStyle.Render(b.Role))
	}

	return joinLines(
		box.Render(strings.Join(lines, "\n")),
		"",
		textStyle.Render(`Type "help" to see available commands.`),
	)
}

// Help lists the visible commands with their descriptions.
type Help struct {
	Commands []terminal.Command
}

// Render implements terminal.Output.
func (h Help) Render(width int) string {
	lines := []string{"Available commands:"}
	for _, cmd := range h.Commands {
		if cmd.Hidden {
			continue
		}
		lines = append(lines, "- "+cmd.Name+": "+cmd.Description)
	}
	return wrap(strings.Join(lines, "\n"), width)
}

// Error is an inline error panel.
type Error struct {
	Message string
}

// Render implements terminal.Output.
func (e Error) Render(width int) string {
	return errorStyle.Render(wrap("Error: "+e.Message, width))
}
