package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/d-kuro/termfolio/pkg/models"
	"github.com/d-kuro/termfolio/pkg/utils"
)

// Jobs returns the full work history.
func (c *Client) Jobs(ctx context.Context) ([]models.Job, error) {
	return getJSON[[]models.Job](ctx, c, "jobs", "/jobs/")
}

// JobsByTechnology returns the jobs that used the given technology.
func (c *Client) JobsByTechnology(ctx context.Context, technologyID int) ([]models.Job, error) {
	if !ValidateID(technologyID) {
		return nil, validationError("Invalid technology ID")
	}
	id := strconv.Itoa(technologyID)
	return getJSON[[]models.Job](ctx, c, "jobs?technology="+id, "/jobs/?technology="+id)
}

// JobsByDateRange returns the jobs between start and end inclusive.
// Both dates must parse and start must not be after end.
func (c *Client) JobsByDateRange(ctx context.Context, start, end string) ([]models.Job, error) {
	startDate, okStart := ValidateDate(start)
	endDate, okEnd := ValidateDate(end)
	if !okStart || !okEnd {
		return nil, validationError("Invalid date format")
	}
	if startDate.After(endDate) {
		return nil, validationError("Start date must be before end date")
	}

	query := "start_date=" + url.QueryEscape(strings.TrimSpace(start)) +
		"&end_date=" + url.QueryEscape(strings.TrimSpace(end))
	return getJSON[[]models.Job](ctx, c, "jobs?"+query, "/jobs/?"+query)
}

// Projects returns every project.
func (c *Client) Projects(ctx context.Context) ([]models.Project, error) {
	return getJSON[[]models.Project](ctx, c, "projects", "/projects/")
}

// ProjectsByCategory returns the projects in a category given by its short
// name (see ProjectCategories).
func (c *Client) ProjectsByCategory(ctx context.Context, category string) ([]models.Project, error) {
	name, ok := ProjectCategoryName(category)
	if !ok {
		return nil, validationError("Invalid category name")
	}
	return getJSON[[]models.Project](ctx, c,
		"projects?category="+category,
		"/projects/?category="+url.QueryEscape(name))
}

// Categories returns the skill taxonomy with subcategories and technologies.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	return getJSON[[]models.Category](ctx, c, "categories", "/categories/")
}

// SkillsByCategory returns the skill category with the given name.
func (c *Client) SkillsByCategory(ctx context.Context, name string) (models.Category, error) {
	if strings.TrimSpace(name) == "" {
		return models.Category{}, validationError("Category name is required")
	}

	categories, err := c.Categories(ctx)
	if err != nil {
		return models.Category{}, err
	}
	if cat, ok := utils.Find(categories, func(c models.Category) bool { return c.Name == name }); ok {
		return cat, nil
	}
	return models.Category{}, &APIError{
		Message: fmt.Sprintf("Category %s not found", name),
		Status:  http.StatusNotFound,
	}
}

// Subcategories returns every skill subcategory.
func (c *Client) Subcategories(ctx context.Context) ([]models.Subcategory, error) {
	return getJSON[[]models.Subcategory](ctx, c, "subcategories", "/subcategories/")
}

// TechnologiesBySubcategory returns the technologies of one subcategory.
func (c *Client) TechnologiesBySubcategory(ctx context.Context, subcategoryID int) ([]models.Technology, error) {
	if !ValidateID(subcategoryID) {
		return nil, validationError("Invalid subcategory ID")
	}
	id := strconv.Itoa(subcategoryID)
	return getJSON[[]models.Technology](ctx, c,
		"subcategory-technologies-"+id,
		"/subcategories/"+id+"/technologies/")
}

// Technologies returns every technology.
func (c *Client) Technologies(ctx context.Context) ([]models.Technology, error) {
	return getJSON[[]models.Technology](ctx, c, "technologies", "/technologies/")
}

// TechnologiesByCategory returns the technologies under a skill category name.
func (c *Client) TechnologiesByCategory(ctx context.Context, category string) ([]models.Technology, error) {
	if strings.TrimSpace(category) == "" {
		return nil, validationError("Category name is required")
	}
	return getJSON[[]models.Technology](ctx, c,
		"category-technologies-"+category,
		"/technologies/?category="+url.QueryEscape(category))
}
