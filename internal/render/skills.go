package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/d-kuro/termfolio/pkg/models"
)

type categoryColors struct {
	header lipgloss.Color
	label  lipgloss.Color
}

var skillColors = map[string]categoryColors{
	"Infrastructure & Cloud":      {header: blueColor, label: purpleColor},
	"MLOps & Model Deployment":    {header: greenColor, label: cyanColor},
	"Data Engineering & Pipeline": {header: yellowColor, label: orangeColor},
	"Machine Learning & AI":       {header: redColor, label: pinkColor},
	"Programming & Tools":         {header: purpleColor, label: indigoColor},
}

var defaultSkillColors = categoryColors{header: mutedColor, label: textColor}

// Skills is the technology taxonomy grouped by category and subcategory.
type Skills struct {
	Categories []models.Category
}

// Render implements terminal.Output.
func (s Skills) Render(width int) string {
	width = normalizeWidth(width)
	if len(s.Categories) == 0 {
		return textStyle.Render("No skills data available.")
	}

	var blocks []string
	for _, cat := range s.Categories {
		colors, ok := skillColors[cat.Name]
		if !ok {
			colors = defaultSkillColors
		}
		labelStyle := lipgloss.NewStyle().Foreground(colors.label)

		labels := make([]string, len(cat.Subcategories))
		for i, sub := range cat.Subcategories {
			labels[i] = sub.Name + ":"
		}
		col := labelWidth(labels, 24)

		lines := []string{rule(cat.Name, width, colors.header)}
		for i, sub := range cat.Subcategories {
			names := make([]string, len(sub.Technologies))
			for j, t := range sub.Technologies {
				names[j] = t.Name
			}
			value := wrap(strings.Join(names, ", "), max(20, width-col))
			value = strings.ReplaceAll(value, "\n", "\n"+strings.Repeat(" ", col))
			lines = append(lines, labelStyle.Render(padLabel(labels[i], col))+textStyle.Render(value))
		}
		blocks = append(blocks, joinLines(lines...))
	}
	return strings.Join(blocks, "\n\n")
}
