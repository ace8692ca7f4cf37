package cmd

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/d-kuro/termfolio/internal/api"
	"github.com/d-kuro/termfolio/pkg/models"
	"github.com/spf13/cobra"
)

var (
	fetchFormat      string
	fetchTechnology  int
	fetchStart       string
	fetchEnd         string
	fetchCategory    string
	fetchSubcategory int
)

var fetchResources = []string{"jobs", "projects", "categories", "subcategories", "technologies"}

var fetchFormats = []string{"table", "json", "yaml", "csv"}

// fetchCmd represents the fetch command.
var fetchCmd = &cobra.Command{
	Use:   "fetch <resource>",
	Short: "Print content API resources",
	Long: `Fetch a resource from the portfolio content API and print it.

Resources: jobs, projects, categories, subcategories, technologies.
Filters are validated before any request is sent.`,
	Example: `  # Work history as a table
  termfolio fetch jobs

  # Jobs that used technology 3, as JSON
  termfolio fetch jobs --technology 3 --format json

  # Jobs within a date range
  termfolio fetch jobs --start 2021-01-01 --end 2023-12-31

  # Data engineering projects as YAML
  termfolio fetch projects --category data --format yaml

  # Technologies of subcategory 4
  termfolio fetch technologies --subcategory 4`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: fetchResources,
	RunE:      runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVarP(&fetchFormat, "format", "o", "table", "Output format (table, json, yaml, csv)")
	fetchCmd.Flags().IntVar(&fetchTechnology, "technology", 0, "Only jobs that used this technology ID")
	fetchCmd.Flags().StringVar(&fetchStart, "start", "", "Only jobs from this date (with --end)")
	fetchCmd.Flags().StringVar(&fetchEnd, "end", "", "Only jobs until this date (with --start)")
	fetchCmd.Flags().StringVarP(&fetchCategory, "category", "c", "", "Project category short name, or skill category name")
	fetchCmd.Flags().IntVar(&fetchSubcategory, "subcategory", 0, "Only technologies of this subcategory ID")

	fetchCmd.MarkFlagsRequiredTogether("start", "end")
	fetchCmd.MarkFlagsMutuallyExclusive("technology", "start")

	_ = fetchCmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return fetchFormats, cobra.ShellCompDirectiveNoFileComp
	})
	_ = fetchCmd.RegisterFlagCompletionFunc("category", getCategoryCompletions)
}

// fetchQuery holds the filters of one fetch invocation. A filter applies
// whenever its flag was given, even with an empty or zero value.
type fetchQuery struct {
	resource    string
	technology  *int
	start, end  string
	dateRange   bool
	category    *string
	subcategory *int
}

func runFetch(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(fetchFormat)
	if !slices.Contains(fetchFormats, format) {
		return fmt.Errorf("unsupported format %q (want one of %s)", fetchFormat, strings.Join(fetchFormats, ", "))
	}

	cc, err := NewCommandContext()
	if err != nil {
		return err
	}
	defer cc.Close()

	q := fetchQuery{resource: args[0], start: fetchStart, end: fetchEnd}
	flags := cmd.Flags()
	if flags.Changed("technology") {
		q.technology = &fetchTechnology
	}
	q.dateRange = flags.Changed("start")
	if flags.Changed("category") {
		q.category = &fetchCategory
	}
	if flags.Changed("subcategory") {
		q.subcategory = &fetchSubcategory
	}

	data, err := fetchResource(cmd.Context(), cc.Client, q)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", q.resource, err)
	}

	p := cc.Printer
	switch format {
	case "json":
		return p.PrintJSON(data)
	case "yaml":
		return p.PrintYAML(data)
	case "csv":
		p.UseCSV(true)
	}

	switch v := data.(type) {
	case []models.Job:
		return p.PrintJobs(v)
	case []models.Project:
		return p.PrintProjects(v)
	case []models.Category:
		return p.PrintCategories(v)
	case []models.Subcategory:
		return p.PrintSubcategories(v)
	case []models.Technology:
		return p.PrintTechnologies(v)
	default:
		return fmt.Errorf("no table layout for %T", data)
	}
}

// resourceClient is the part of *api.Client fetch uses.
type resourceClient interface {
	Jobs(ctx context.Context) ([]models.Job, error)
	JobsByTechnology(ctx context.Context, technologyID int) ([]models.Job, error)
	JobsByDateRange(ctx context.Context, start, end string) ([]models.Job, error)
	Projects(ctx context.Context) ([]models.Project, error)
	ProjectsByCategory(ctx context.Context, category string) ([]models.Project, error)
	Categories(ctx context.Context) ([]models.Category, error)
	SkillsByCategory(ctx context.Context, name string) (models.Category, error)
	Subcategories(ctx context.Context) ([]models.Subcategory, error)
	Technologies(ctx context.Context) ([]models.Technology, error)
	TechnologiesBySubcategory(ctx context.Context, subcategoryID int) ([]models.Technology, error)
	TechnologiesByCategory(ctx context.Context, category string) ([]models.Technology, error)
}

var _ resourceClient = (*api.Client)(nil)

// fetchResource dispatches q to the matching client call.
func fetchResource(ctx context.Context, c resourceClient, q fetchQuery) (any, error) {
	switch q.resource {
	case "jobs":
		switch {
		case q.technology != nil:
			return c.JobsByTechnology(ctx, *q.technology)
		case q.dateRange:
			return c.JobsByDateRange(ctx, q.start, q.end)
		}
		return c.Jobs(ctx)

	case "projects":
		if q.category != nil {
			return c.ProjectsByCategory(ctx, *q.category)
		}
		return c.Projects(ctx)

	case "categories":
		if q.category != nil {
			cat, err := c.SkillsByCategory(ctx, *q.category)
			if err != nil {
				return nil, err
			}
			return []models.Category{cat}, nil
		}
		return c.Categories(ctx)

	case "subcategories":
		return c.Subcategories(ctx)

	case "technologies":
		switch {
		case q.subcategory != nil:
			return c.TechnologiesBySubcategory(ctx, *q.subcategory)
		case q.category != nil:
			return c.TechnologiesByCategory(ctx, *q.category)
		}
		return c.Technologies(ctx)
	}

	return nil, fmt.Errorf("unknown resource %q", q.resource)
}
