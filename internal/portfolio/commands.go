// Package portfolio binds the terminal command names to the content API
// and the panel renderers.
package portfolio

import (
	"context"
	"fmt"

	"github.com/d-kuro/termfolio/internal/render"
	"github.com/d-kuro/termfolio/internal/terminal"
	"github.com/d-kuro/termfolio/pkg/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Source is the content the commands draw from. *api.Client implements it.
type Source interface {
	Jobs(ctx context.Context) ([]models.Job, error)
	Categories(ctx context.Context) ([]models.Category, error)
	ProjectsByCategory(ctx context.Context, category string) ([]models.Project, error)
}

// Deps holds what the command table is built from. Rebuild the table
// when Jobs or Profile change.
type Deps struct {
	Source  Source
	Profile models.ProfileConfig
	Jobs    []models.Job
	Logger  *zap.Logger
}

// Commands builds the command table in canonical order.
func Commands(d Deps) terminal.Table {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var commands []terminal.Command
	commands = append(commands,
		terminal.Command{
			Name:   "help",
			Hidden: true,
			Run: func(context.Context) (terminal.Output, error) {
				return render.Help{Commands: commands}, nil
			},
		},
		terminal.Command{
			Name:        "about",
			Description: "Learn about me",
			Run: func(context.Context) (terminal.Output, error) {
				return render.About{Profile: d.Profile, Jobs: d.Jobs}, nil
			},
		},
		terminal.Command{
			Name:        "skills",
			Description: "View my technical skills",
			Async:       true,
			Run: func(ctx context.Context) (terminal.Output, error) {
				categories, err := d.Source.Categories(ctx)
				if err != nil {
					logger.Warn("failed to load skills", zap.Error(err))
					return render.Error{Message: "Failed to load skills data"}, nil
				}
				return render.Skills{Categories: categories}, nil
			},
		},
		terminal.Command{
			Name:        "projects",
			Description: "See all projects and categories",
			Run: func(context.Context) (terminal.Output, error) {
				return render.ProjectIndex{}, nil
			},
		},
		terminal.Command{
			Name:        "contact",
			Description: "Get my contact information",
			Run: func(context.Context) (terminal.Output, error) {
				return render.Contact{Profile: d.Profile}, nil
			},
		},
		terminal.Command{
			Name:        terminal.ClearCommand,
			Description: "Clear the terminal",
		},
	)
	for _, c := range render.ProjectCategories {
		commands = append(commands, projectsCommand(d.Source, c, logger))
	}

	return terminal.NewTable(commands...)
}

func projectsCommand(src Source, c render.ProjectCategory, logger *zap.Logger) terminal.Command {
	return terminal.Command{
		Name:        c.Command,
		Description: c.Description,
		Async:       true,
		Hidden:      true,
		Run: func(ctx context.Context) (terminal.Output, error) {
			projects, err := src.ProjectsByCategory(ctx, c.Key)
			if err != nil {
				logger.Warn("failed to load projects",
					zap.String("category", c.Key),
					zap.Error(err),
				)
				return render.Error{Message: err.Error()}, nil
			}
			return render.Projects{Category: c.Key, Projects: projects}, nil
		},
	}
}

// Banner is the welcome entry for profile.
func Banner(profile models.ProfileConfig) terminal.Output {
	return render.Banner{Name: profile.Name, Role: profile.Role}
}

// Preload fetches the skill taxonomy and the work history concurrently so
// the cache is warm and about has jobs to show.
func Preload(ctx context.Context, src Source) ([]models.Job, error) {
	g, ctx := errgroup.WithContext(ctx)

	var jobs []models.Job
	g.Go(func() error {
		if _, err := src.Categories(ctx); err != nil {
			return fmt.Errorf("failed to load categories: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		jobs, err = src.Jobs(ctx)
		if err != nil {
			return fmt.Errorf("failed to load jobs: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return jobs, nil
}
