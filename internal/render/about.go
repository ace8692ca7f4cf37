package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/d-kuro/termfolio/pkg/models"
)

// About is the profile panel: who, background, values, interests,
// education and work history.
type About struct {
	Profile models.ProfileConfig
	Jobs    []models.Job
}

var (
	infoTagStyle   = lipgloss.NewStyle().Foreground(greenColor).Bold(true)
	statusTagStyle = lipgloss.NewStyle().Foreground(yellowColor).Bold(true)
	backgroundBar  = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(purpleColor).
			Foreground(textColor).
			PaddingLeft(1)
)

// Render implements terminal.Output.
func (a About) Render(width int) string {
	width = normalizeWidth(width)
	p := a.Profile

	var b strings.Builder
	b.WriteString(titleStyle.Render("Hi! I'm " + p.Name))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(blueColor).Render(strings.Repeat("─", min(24, width))))
	b.WriteString("\n\n")

	if p.Location != "" {
		b.WriteString(infoTagStyle.Render("[INFO]") + " " + textStyle.Render("Location: "+p.Location) + "\n")
	}
	if p.Role != "" {
		b.WriteString(infoTagStyle.Render("[INFO]") + " " + textStyle.Render("Role: "+p.Role) + "\n")
	}
	if p.Status != "" {
		b.WriteString(statusTagStyle.Render("[STATUS]") + " " + textStyle.Render("Currently: "+p.Status) + "\n")
	}

	if p.Background != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(purpleColor).Render("Background"))
		b.WriteString("\n")
		b.WriteString(backgroundBar.Render(wrap(p.Background, width-2)))
		b.WriteString("\n")
	}

	if len(p.Values) > 0 {
		b.WriteString("\n")
		b.WriteString(grid("CORE VALUES", "▪", p.Values, width, cyanColor))
		b.WriteString("\n")
	}
	if len(p.Interests) > 0 {
		b.WriteString("\n")
		b.WriteString(grid("INTERESTS", "⚡", p.Interests, width, orangeColor))
		b.WriteString("\n")
	}
	if len(p.Education) > 0 {
		b.WriteString("\n")
		b.WriteString(education(p.Education, width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(Work{Jobs: a.Jobs}.Render(width))
	b.WriteString("\n\n")
	b.WriteString(suggestions("skills", "projects", "contact"))

	return b.String()
}

// grid lays items out in two columns when the width allows.
func grid(title, icon string, items []string, width int, color lipgloss.Color) string {
	iconStyle := lipgloss.NewStyle().Foreground(color)
	cells := make([]string, len(items))
	for i, item := range items {
		cells[i] = icon + " " + item
	}

	colWidth := labelWidth(cells, 0)
	lines := []string{rule(title, width, color)}
	twoColumns := colWidth*2 <= width
	for i := 0; i < len(items); i++ {
		left := iconStyle.Render(icon) + " " + textStyle.Render(items[i])
		if twoColumns && i+1 < len(items) {
			pad := strings.Repeat(" ", colWidth-lipgloss.Width(cells[i]))
			left += pad + iconStyle.Render(icon) + " " + textStyle.Render(items[i+1])
			i++
		}
		lines = append(lines, left)
	}
	return joinLines(lines...)
}

func education(degrees []models.Degree, width int) string {
	accent := lipgloss.NewStyle().Foreground(indigoColor)
	lines := []string{rule("EDUCATION", width, indigoColor)}
	for _, d := range degrees {
		lines = append(lines,
			accent.Render("❯ ")+accent.Bold(true).Render(d.Period)+
				mutedStyle.Render(" | ")+textStyle.Render(d.Degree)+
				mutedStyle.Render(" @ ")+lipgloss.NewStyle().Foreground(blueColor).Render(d.School))
		for _, detail := range d.Details {
			lines = append(lines, indent(accent.Render("• ")+textStyle.Render(wrap(detail, width-6)), 4))
		}
	}
	return joinLines(lines...)
}

func suggestions(commands ...string) string {
	parts := make([]string, len(commands))
	for i, c := range commands {
		parts[i] = commandStyle.Render("$ " + c)
	}
	return joinLines(
		mutedStyle.Render("Would you like to know more? Try these commands:"),
		strings.Join(parts, "   "),
	)
}

// indent prefixes every line of s with n spaces.
func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}
