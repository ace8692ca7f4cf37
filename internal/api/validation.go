package api

import (
	"strings"
	"time"

	"github.com/spf13/cast"
)

// ProjectCategories lists the short project category names in display order.
var ProjectCategories = []string{"infrastructure", "mlops", "data", "ml", "tools"}

// projectCategoryNames maps short category names to the names the API stores.
var projectCategoryNames = map[string]string{
	"infrastructure": "Infrastructure & Cloud",
	"mlops":          "MLOps & Model Deployment",
	"data":           "Data Engineering",
	"ml":             "Machine Learning",
	"tools":          "Programming & Tools",
}

// ProjectCategoryName returns the API display name for a short category name.
func ProjectCategoryName(short string) (string, bool) {
	name, ok := projectCategoryNames[short]
	return name, ok
}

// ProjectCategoryKey returns the short category name for an API display name.
func ProjectCategoryKey(name string) (string, bool) {
	for short, display := range projectCategoryNames {
		if display == name {
			return short, true
		}
	}
	return "", false
}

// ValidateID reports whether id is usable as a resource ID.
func ValidateID(id int) bool {
	return id > 0
}

// ValidateDate parses a date leniently, accepting the layouts cast understands
// (2006-01-02, RFC 3339, "Jan 2, 2006", ...).
func ValidateDate(date string) (time.Time, bool) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Time{}, false
	}
	t, err := cast.StringToDate(date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
