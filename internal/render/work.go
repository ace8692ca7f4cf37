package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/d-kuro/termfolio/pkg/models"
)

// Work is the work history list.
type Work struct {
	Jobs []models.Job
}

// Render implements terminal.Output.
func (w Work) Render(width int) string {
	width = normalizeWidth(width)
	if len(w.Jobs) == 0 {
		return mutedStyle.Render("Loading work history...")
	}

	accent := lipgloss.NewStyle().Foreground(emeraldColor)
	lines := []string{rule("WORK HISTORY", width, emeraldColor)}
	for _, job := range w.Jobs {
		lines = append(lines, "", jobHeader(job, accent))
		for _, a := range job.Achievements {
			lines = append(lines, indent(accent.Render("$ ")+textStyle.Render(wrap(a.Description, width-8)), 4))
		}
		if len(job.Technologies) > 0 {
			names := make([]string, len(job.Technologies))
			for i, t := range job.Technologies {
				names[i] = t.Name
			}
			lines = append(lines, indent(
				accent.Render("Technologies: ")+textStyle.Render(wrap(strings.Join(names, ", "), width-18)), 4))
		}
	}
	return joinLines(lines...)
}

// Period returns the "Jan 2020 - Present" span of a job.
func Period(job models.Job) string {
	end := ""
	switch {
	case job.IsCurrent:
		end = "Present"
	case job.EndDate != nil:
		end = formatDate(*job.EndDate)
	}
	return formatDate(job.StartDate) + " - " + end
}

func jobHeader(job models.Job, accent lipgloss.Style) string {
	company := textStyle.Render(job.Company)
	if job.Link != "" {
		company = linkStyle.Render(job.Company)
	}
	return accent.Render("❯ ") +
		accent.Bold(true).Render(Period(job)) +
		mutedStyle.Render(" | ") + textStyle.Render(job.Title) +
		mutedStyle.Render(" @ ") + company
}
