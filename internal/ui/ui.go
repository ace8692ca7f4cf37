// Package ui provides output formatting for the non-interactive termfolio commands.
package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/d-kuro/termfolio/internal/render"
	"github.com/d-kuro/termfolio/internal/table"
	"github.com/d-kuro/termfolio/pkg/models"
	"github.com/d-kuro/termfolio/pkg/utils"
	"gopkg.in/yaml.v3"
)

// Printer handles output formatting.
type Printer struct {
	useColor bool
	csv      bool
	out      io.Writer
	errOut   io.Writer
}

// New creates a new Printer instance writing to stdout and stderr.
func New(config *models.UIConfig) *Printer {
	return &Printer{
		useColor: config.Color,
		out:      os.Stdout,
		errOut:   os.Stderr,
	}
}

// SetOutput redirects regular and error output.
func (p *Printer) SetOutput(out, errOut io.Writer) *Printer {
	p.out = out
	p.errOut = errOut
	return p
}

// UseCSV makes the table printers emit CSV instead of bordered tables.
func (p *Printer) UseCSV(enabled bool) *Printer {
	p.csv = enabled
	return p
}

// Apply switches the renderer palette on or off to match the printer.
func (p *Printer) Apply() {
	render.SetColor(p.useColor)
}

// PrintJSON writes v as indented JSON.
func (p *Printer) PrintJSON(v any) error {
	encoder := json.NewEncoder(p.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// PrintYAML writes v as YAML.
func (p *Printer) PrintYAML(v any) error {
	encoder := yaml.NewEncoder(p.out)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}

// PrintJobs displays jobs in a table.
func (p *Printer) PrintJobs(jobs []models.Job) error {
	if len(jobs) == 0 {
		p.PrintInfo("No jobs found")
		return nil
	}

	b := p.newTable("ID", "PERIOD", "TITLE", "COMPANY", "TECHNOLOGIES")
	for _, job := range jobs {
		b.Row(
			strconv.Itoa(job.ID),
			render.Period(job),
			job.Title,
			job.Company,
			technologyNames(job.Technologies),
		)
	}
	return p.flush(b)
}

// PrintProjects displays projects in a table.
func (p *Printer) PrintProjects(projects []models.Project) error {
	if len(projects) == 0 {
		p.PrintInfo("No projects found")
		return nil
	}

	b := p.newTable("ID", "NAME", "CATEGORY", "DESCRIPTION", "TECHNOLOGIES")
	for _, project := range projects {
		b.Row(
			strconv.Itoa(project.ID),
			project.Name,
			project.Category,
			truncateMessage(project.Description, 50),
			technologyNames(project.Technology),
		)
	}
	return p.flush(b)
}

// PrintCategories displays skill categories with their subcategories.
func (p *Printer) PrintCategories(categories []models.Category) error {
	if len(categories) == 0 {
		p.PrintInfo("No categories found")
		return nil
	}

	b := p.newTable("ID", "CATEGORY", "SUBCATEGORIES")
	for _, cat := range categories {
		names := utils.Map(cat.Subcategories, func(s models.Subcategory) string { return s.Name })
		b.Row(strconv.Itoa(cat.ID), cat.Name, strings.Join(names, ", "))
	}
	return p.flush(b)
}

// PrintSubcategories displays subcategories and their technologies.
func (p *Printer) PrintSubcategories(subcategories []models.Subcategory) error {
	if len(subcategories) == 0 {
		p.PrintInfo("No subcategories found")
		return nil
	}

	b := p.newTable("ID", "SUBCATEGORY", "CATEGORY", "TECHNOLOGIES")
	for _, sub := range subcategories {
		b.Row(
			strconv.Itoa(sub.ID),
			sub.Name,
			strconv.Itoa(sub.Category),
			technologyNames(sub.Technologies),
		)
	}
	return p.flush(b)
}

// PrintTechnologies displays technologies in a table.
func (p *Printer) PrintTechnologies(technologies []models.Technology) error {
	if len(technologies) == 0 {
		p.PrintInfo("No technologies found")
		return nil
	}

	b := p.newTable("ID", "NAME")
	for _, tech := range technologies {
		b.Row(strconv.Itoa(tech.ID), tech.Name)
	}
	return p.flush(b)
}

// PrintConfig displays configuration as sorted key = value lines.
func (p *Printer) PrintConfig(settings map[string]any) {
	lines := make([]string, 0, len(settings))
	collectConfig("", settings, &lines)
	slices.Sort(lines)
	for _, line := range lines {
		_, _ = fmt.Fprintln(p.out, line)
	}
}

// PrintError displays an error message.
func (p *Printer) PrintError(err error) {
	_, _ = fmt.Fprintf(p.errOut, "Error: %v\n", err)
}

// PrintInfo displays an informational message.
func (p *Printer) PrintInfo(message string) {
	_, _ = fmt.Fprintln(p.out, message)
}

// Print writes pre-rendered text.
func (p *Printer) Print(text string) {
	_, _ = fmt.Fprintln(p.out, text)
}

func (p *Printer) newTable(headers ...string) *table.Builder {
	return table.New().SetOutput(p.out).Headers(headers...)
}

func (p *Printer) flush(b *table.Builder) error {
	if p.csv {
		return b.WriteCSV()
	}
	return b.Println()
}

func technologyNames(techs []models.Technology) string {
	return strings.Join(utils.Map(techs, func(t models.Technology) string { return t.Name }), ", ")
}

// truncateMessage truncates a message to the specified number of runes.
func truncateMessage(message string, maxLen int) string {
	runes := []rune(message)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return message
}

// collectConfig flattens nested settings into dotted keys. Paths under the
// home directory are shown with ~.
func collectConfig(prefix string, data any, lines *[]string) {
	switch v := data.(type) {
	case map[string]any:
		for key, value := range v {
			newPrefix := key
			if prefix != "" {
				newPrefix = prefix + "." + key
			}
			collectConfig(newPrefix, value, lines)
		}
	case string:
		*lines = append(*lines, fmt.Sprintf("%s = %s", prefix, utils.TildePath(v)))
	default:
		*lines = append(*lines, fmt.Sprintf("%s = %v", prefix, v))
	}
}
