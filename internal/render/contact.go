package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/d-kuro/termfolio/pkg/models"
)

const contactFooter = "Feel free to reach out for collaborations, opportunities, or just to chat about technology and infrastructure!"

// Contact is the contact card.
type Contact struct {
	Profile models.ProfileConfig
}

type contactItem struct {
	label string
	value string
	href  string
}

// items returns the label, value and link of each contact line.
func (c Contact) items() []contactItem {
	p := c.Profile
	return []contactItem{
		{label: "Email", value: p.Email, href: "mailto:" + p.Email},
		{label: "LinkedIn", value: p.LinkedIn, href: "https://www.linkedin.com/in/" + p.LinkedIn},
		{label: "GitHub", value: p.GitHub, href: "https://github.com/" + p.GitHub},
		{label: "Location", value: p.Location},
	}
}

// Render implements terminal.Output.
func (c Contact) Render(width int) string {
	width = normalizeWidth(width)
	items := c.items()

	labels := make([]string, len(items))
	for i, it := range items {
		labels[i] = it.label + ":"
	}
	col := labelWidth(labels, 12)
	labelStyle := lipgloss.NewStyle().Foreground(purpleColor).Bold(true)

	lines := []string{rule("Contact Information", width, purpleColor), ""}
	for i, it := range items {
		if it.value == "" {
			continue
		}
		value := textStyle.Render(it.value)
		if it.href != "" {
			value = linkStyle.Render(it.value) + mutedStyle.Render(" ("+it.href+")")
		}
		lines = append(lines, labelStyle.Render(padLabel(labels[i], col))+value)
	}
	lines = append(lines, "", mutedStyle.Render(wrap(contactFooter, width)))
	return joinLines(lines...)
}
