// Package models defines the core data structures used throughout the termfolio application.
package models

import "time"

// Technology is a single tool or language listed in the skills taxonomy.
type Technology struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Subcategory groups technologies under a skill category.
type Subcategory struct {
	ID           int          `json:"id" yaml:"id"`
	Name         string       `json:"name" yaml:"name"`
	Category     int          `json:"category" yaml:"category"` // Parent category ID
	Technologies []Technology `json:"technologies" yaml:"technologies"`
}

// Category is a top-level skill area such as "Infrastructure & Cloud".
type Category struct {
	ID            int           `json:"id" yaml:"id"`
	Name          string        `json:"name" yaml:"name"`
	Subcategories []Subcategory `json:"subcategories" yaml:"subcategories"`
}

// Project is a portfolio project entry.
type Project struct {
	ID          int          `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Description string       `json:"description" yaml:"description"`
	Technology  []Technology `json:"technology" yaml:"technology"`
	Category    string       `json:"category" yaml:"category"`
	GitHub      string       `json:"github" yaml:"github"`
}

// Achievement is a bullet point attached to a job.
type Achievement struct {
	ID          int    `json:"id" yaml:"id"`
	Description string `json:"description" yaml:"description"`
	Job         int    `json:"job" yaml:"job"`
}

// Job is a work history entry.
type Job struct {
	ID           int           `json:"id" yaml:"id"`
	Company      string        `json:"company" yaml:"company"`
	Link         string        `json:"link" yaml:"link"`
	Title        string        `json:"title" yaml:"title"`
	StartDate    string        `json:"start_date" yaml:"start_date"`
	EndDate      *string       `json:"end_date" yaml:"end_date"` // nil while the job is current
	IsCurrent    bool          `json:"is_current" yaml:"is_current"`
	Technologies []Technology  `json:"technologies" yaml:"technologies"`
	Achievements []Achievement `json:"achievements" yaml:"achievements"`
}

// Config represents the application configuration.
type Config struct {
	API      APIConfig      `mapstructure:"api"`      // Content API access
	Cache    CacheConfig    `mapstructure:"cache"`    // Response cache
	Terminal TerminalConfig `mapstructure:"terminal"` // REPL limits
	UI       UIConfig       `mapstructure:"ui"`       // UI-related configuration
	Finder   FinderConfig   `mapstructure:"finder"`   // Fuzzy finder used by browse
	Log      LogConfig      `mapstructure:"log"`      // Logging
	Profile  ProfileConfig  `mapstructure:"profile"`  // Static portfolio content
}

// APIConfig contains content API options.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"` // Base URL, e.g. http://localhost:8000/api
	Timeout time.Duration `mapstructure:"timeout"`  // Per-attempt request timeout
	Retries int           `mapstructure:"retries"`  // Total attempts per request
	Backoff time.Duration `mapstructure:"backoff"`  // Base delay for exponential backoff
}

// CacheConfig contains response cache options.
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"` // How long a fetched payload stays fresh
}

// TerminalConfig contains REPL buffer limits.
type TerminalConfig struct {
	MaxHistory int `mapstructure:"max_history"` // Scrollback entries kept
	MaxRecall  int `mapstructure:"max_recall"`  // Submitted commands kept for up/down recall
}

// UIConfig contains UI-related configuration options.
type UIConfig struct {
	Color bool `mapstructure:"color"` // Enable colored output
}

// FinderConfig contains fuzzy finder options.
type FinderConfig struct {
	Preview bool `mapstructure:"preview"` // Show the panel of the highlighted item
}

// LogConfig contains logging options.
type LogConfig struct {
	File  string `mapstructure:"file"`  // Log file path
	Level string `mapstructure:"level"` // debug, info, warn, error
}

// ProfileConfig holds the static portfolio content shown by about and contact.
type ProfileConfig struct {
	Name       string   `mapstructure:"name"`
	Role       string   `mapstructure:"role"`
	Location   string   `mapstructure:"location"`
	Status     string   `mapstructure:"status"`
	Background string   `mapstructure:"background"`
	Email      string   `mapstructure:"email"`
	LinkedIn   string   `mapstructure:"linkedin"`
	GitHub     string   `mapstructure:"github"`
	Values     []string `mapstructure:"values"`
	Interests  []string `mapstructure:"interests"`
	Education  []Degree `mapstructure:"education"`
}

// Degree is an education entry in the profile.
type Degree struct {
	Period  string   `mapstructure:"period"`
	Degree  string   `mapstructure:"degree"`
	School  string   `mapstructure:"school"`
	Details []string `mapstructure:"details"`
}
