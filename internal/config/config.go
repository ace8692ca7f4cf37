// Package config provides configuration management for the termfolio application.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/d-kuro/termfolio/pkg/models"
	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	appName    = "termfolio"
	envPrefix  = "TERMFOLIO"
)

// DefaultBaseURL is the content API used when nothing else is configured.
const DefaultBaseURL = "http://localhost:8000/api"

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			// Fallback to current directory if home is not available
			return filepath.Join(".", ".config", appName)
		}
		return filepath.Join(home, ".config", appName)
	}
	return filepath.Join(dir, appName)
}

// Dir returns the directory holding the config file and the default log file.
func Dir() string {
	return getConfigDir()
}

// Init initializes the configuration system, creating default config if needed.
func Init() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	configDir := getConfigDir()
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigName(configName)
	viper.SetConfigType(configType)
	viper.AddConfigPath(configDir)

	setDefaults(configDir)
	bindEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			configPath := filepath.Join(configDir, configName+"."+configType)
			if err := viper.SafeWriteConfig(); err != nil {
				if err := viper.WriteConfigAs(configPath); err != nil {
					return fmt.Errorf("failed to create config file: %w", err)
				}
			}
		} else {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	return nil
}

func setDefaults(configDir string) {
	viper.SetDefault("api.base_url", DefaultBaseURL)
	viper.SetDefault("api.timeout", 5*time.Second)
	viper.SetDefault("api.retries", 3)
	viper.SetDefault("api.backoff", 100*time.Millisecond)

	viper.SetDefault("cache.ttl", 5*time.Minute)

	viper.SetDefault("terminal.max_history", 1000)
	viper.SetDefault("terminal.max_recall", 100)

	viper.SetDefault("ui.color", true)
	viper.SetDefault("finder.preview", true)

	viper.SetDefault("log.file", filepath.Join(configDir, appName+".log"))
	viper.SetDefault("log.level", "info")

	// Profile defaults
	viper.SetDefault("profile.name", "Francis Pagulayan")
	viper.SetDefault("profile.role", "Systems Automation Engineer")
	viper.SetDefault("profile.location", "Chicago, IL")
	viper.SetDefault("profile.status", "Building elegant infrastructure solutions")
	viper.SetDefault("profile.background", "A passionate infrastructure and automation engineer with expertise in creating scalable, efficient systems. Specialized in transforming complex technical challenges into elegant solutions.")
	viper.SetDefault("profile.email", "example@google.com")
	viper.SetDefault("profile.linkedin", "francis-pagulayan-924796222")
	viper.SetDefault("profile.github", "FPolygon")
	viper.SetDefault("profile.values", []string{
		"Infrastructure as Code",
		"Automation First Mindset",
		"Continuous Learning",
		"Clean, Maintainable Solutions",
	})
	viper.SetDefault("profile.interests", []string{
		"Cloud Architecture",
		"DevOps Practices",
		"System Optimization",
		"Automation Frameworks",
	})
	viper.SetDefault("profile.education", []map[string]any{
		{
			"period": "2020 - 2022",
			"degree": "B.S. Computer Science",
			"school": "University of Illinois at Chicago",
			"details": []string{
				"Focus: Machine Learning & Distributed Systems",
				"Senior Project: Led a team of 4 to develop and fine tune a suite of machine learning models to predict traffic accidents based on a variety of environmental factors",
			},
		},
	})
}

// bindEnv maps TERMFOLIO_* variables onto config keys. The base URL also
// honours the shorter names used by deployments of the web front end.
func bindEnv() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv("api.base_url", "TERMFOLIO_API_URL", "PORTFOLIO_API_URL", "TERMFOLIO_API_BASE_URL")
}

// Load loads and returns the current configuration.
func Load() (*models.Config, error) {
	var cfg models.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.API.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.API.BaseURL), "/")
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultBaseURL
	}

	cfg.Log.File = expandPath(cfg.Log.File)

	return &cfg, nil
}

// expandPath expands environment variables and a leading ~/ in a path.
func expandPath(path string) string {
	path = os.ExpandEnv(path)
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	return path
}

// Watch reloads the configuration whenever the config file changes on disk
// and hands the result to onChange. Reload failures are skipped.
func Watch(onChange func(*models.Config)) {
	viper.OnConfigChange(func(fsnotify.Event) {
		cfg, err := Load()
		if err != nil {
			return
		}
		onChange(cfg)
	})
	viper.WatchConfig()
}

// Set sets a configuration value by key.
func Set(key string, value any) error {
	viper.Set(key, value)
	return viper.WriteConfig()
}

// GetValue retrieves a configuration value by key.
func GetValue(key string) any {
	return viper.Get(key)
}

// AllSettings returns all configuration settings.
func AllSettings() map[string]any {
	return viper.AllSettings()
}

// Get returns the current loaded configuration, falling back to viper
// defaults when the config cannot be decoded.
func Get() *models.Config {
	cfg, err := Load()
	if err != nil {
		return &models.Config{
			API: models.APIConfig{
				BaseURL: DefaultBaseURL,
				Timeout: 5 * time.Second,
				Retries: 3,
				Backoff: 100 * time.Millisecond,
			},
			Cache:    models.CacheConfig{TTL: 5 * time.Minute},
			Terminal: models.TerminalConfig{MaxHistory: 1000, MaxRecall: 100},
		}
	}
	return cfg
}
