package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/d-kuro/termfolio/pkg/models"
)

// ProjectCategory describes one projects-* command in the category index.
type ProjectCategory struct {
	Command     string
	Key         string // Short API category name
	Description string
}

// ProjectCategories is the category index in display order.
var ProjectCategories = []ProjectCategory{
	{Command: "projects-infra", Key: "infrastructure", Description: "Infrastructure & Cloud Architecture Projects"},
	{Command: "projects-mlops", Key: "mlops", Description: "MLOps & Model Deployment Projects"},
	{Command: "projects-data", Key: "data", Description: "Data Engineering & Pipeline Projects"},
	{Command: "projects-ml", Key: "ml", Description: "Machine Learning & AI Projects"},
}

var projectColors = map[string]lipgloss.Color{
	"infrastructure": cyanColor,
	"mlops":          purpleColor,
	"data":           greenColor,
	"ml":             yellowColor,
}

// ProjectColor returns the accent color of a short category name.
func ProjectColor(key string) lipgloss.Color {
	if c, ok := projectColors[key]; ok {
		return c
	}
	return blueColor
}

// ProjectIndex lists the project category commands.
type ProjectIndex struct{}

// Render implements terminal.Output.
func (ProjectIndex) Render(width int) string {
	width = normalizeWidth(width)
	cmds := make([]string, len(ProjectCategories))
	for i, c := range ProjectCategories {
		cmds[i] = c.Command
	}
	col := labelWidth(cmds, 16)

	lines := []string{
		rule("Project Categories", width, blueColor),
		textStyle.Render("Type the following commands to explore each category:"),
	}
	for _, c := range ProjectCategories {
		cmd := lipgloss.NewStyle().Foreground(ProjectColor(c.Key)).Bold(true).Render(padLabel(c.Command, col))
		lines = append(lines, cmd+mutedStyle.Render("│ ")+textStyle.Render(c.Description))
	}
	return joinLines(lines...)
}

// Projects lists the projects of one category.
type Projects struct {
	Category string // Short API category name
	Projects []models.Project
}

// Render implements terminal.Output.
func (p Projects) Render(width int) string {
	width = normalizeWidth(width)
	if len(p.Projects) == 0 {
		return textStyle.Render("No projects found.")
	}

	title := "FEATURED"
	if p.Category != "" {
		title = strings.ToUpper(p.Category)
	}

	nameStyle := lipgloss.NewStyle().Foreground(yellowColor).Bold(true)
	descStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(mutedColor).
		Foreground(textColor).
		PaddingLeft(1).
		MarginLeft(1)
	techLabel := lipgloss.NewStyle().Foreground(greenColor)
	codeLabel := lipgloss.NewStyle().Foreground(cyanColor)

	lines := []string{rule(title+" Projects", width, ProjectColor(p.Category))}
	for i, project := range p.Projects {
		lines = append(lines,
			"",
			nameStyle.Render(strconv.Itoa(i+1)+". "+project.Name),
			descStyle.Render(lipgloss.NewStyle().Foreground(blueColor).Render("❯ ")+wrap(project.Description, width-6)),
			techLabel.Render("• Technologies:"),
			indent(badges(project.Technology, width-2), 2),
			codeLabel.Render("• Code:"),
			indent(linkStyle.Render(project.GitHub), 2),
		)
	}
	return joinLines(lines...)
}

// badges renders technologies as [Name] tags, wrapping to width.
func badges(techs []models.Technology, width int) string {
	if len(techs) == 0 {
		return mutedStyle.Render("none listed")
	}
	tags := make([]string, len(techs))
	for i, t := range techs {
		tags[i] = "[" + t.Name + "]"
	}
	return lipgloss.NewStyle().Foreground(blueColor).Render(wrap(strings.Join(tags, " "), width))
}
