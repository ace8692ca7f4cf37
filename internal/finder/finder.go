// Package finder provides fuzzy finder integration for the termfolio application.
package finder

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/d-kuro/termfolio/internal/api"
	"github.com/d-kuro/termfolio/internal/render"
	"github.com/d-kuro/termfolio/pkg/models"
	"github.com/ktr0731/go-fuzzyfinder"
)

// Finder provides fuzzy finder functionality.
type Finder struct {
	config *models.FinderConfig
}

// New creates a new Finder instance.
func New(config *models.FinderConfig) *Finder {
	return &Finder{config: config}
}

// SelectProject displays a fuzzy finder for project selection.
func (f *Finder) SelectProject(projects []models.Project) (*models.Project, error) {
	if len(projects) == 0 {
		return nil, fmt.Errorf("no projects available")
	}

	opts := []fuzzyfinder.Option{
		fuzzyfinder.WithPromptString("Select project> "),
	}

	if f.config.Preview {
		opts = append(opts, fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return projectPreview(projects[i], w, h)
		}))
	}

	idx, err := fuzzyfinder.Find(
		projects,
		func(i int) string {
			return projectLabel(projects[i])
		},
		opts...,
	)
	if err != nil {
		return nil, err
	}

	return &projects[idx], nil
}

// SelectJob displays a fuzzy finder for job selection.
func (f *Finder) SelectJob(jobs []models.Job) (*models.Job, error) {
	if len(jobs) == 0 {
		return nil, fmt.Errorf("no jobs available")
	}

	opts := []fuzzyfinder.Option{
		fuzzyfinder.WithPromptString("Select job> "),
	}

	if f.config.Preview {
		opts = append(opts, fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return jobPreview(jobs[i], w, h)
		}))
	}

	idx, err := fuzzyfinder.Find(
		jobs,
		func(i int) string {
			return jobLabel(jobs[i])
		},
		opts...,
	)
	if err != nil {
		return nil, err
	}

	return &jobs[idx], nil
}

func projectLabel(p models.Project) string {
	if p.Category == "" {
		return p.Name
	}
	return fmt.Sprintf("%s [%s]", p.Name, p.Category)
}

func jobLabel(job models.Job) string {
	marker := "  "
	if job.IsCurrent {
		marker = "● "
	}
	return fmt.Sprintf("%s%s @ %s (%s)", marker, job.Title, job.Company, render.Period(job))
}

// ProjectPanel renders the panel shown for a chosen project.
func ProjectPanel(p models.Project, width int) string {
	key, _ := api.ProjectCategoryKey(p.Category)
	return render.Projects{Category: key, Projects: []models.Project{p}}.Render(width)
}

// JobPanel renders the panel shown for a chosen job.
func JobPanel(job models.Job, width int) string {
	return render.Work{Jobs: []models.Job{job}}.Render(width)
}

// projectPreview generates preview content for a project.
func projectPreview(p models.Project, width, maxLines int) string {
	return limitLines(ansi.Strip(ProjectPanel(p, previewWidth(width))), maxLines)
}

// jobPreview generates preview content for a job.
func jobPreview(job models.Job, width, maxLines int) string {
	return limitLines(ansi.Strip(JobPanel(job, previewWidth(width))), maxLines)
}

// previewWidth leaves room for the preview window border.
func previewWidth(width int) int {
	return max(width-4, 20)
}

func limitLines(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return strings.Join(lines, "\n")
}
