package cmd

import (
	"fmt"
	"strings"

	"github.com/d-kuro/termfolio/internal/api"
	"github.com/d-kuro/termfolio/internal/portfolio"
	"github.com/spf13/cobra"
)

// getTerminalCommandCompletions returns terminal command names for shell completion
func getTerminalCommandCompletions(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	table := portfolio.Commands(portfolio.Deps{})

	var completions []string
	for _, name := range table.Complete(strings.ToLower(toComplete)) {
		c, _ := table.Lookup(name)
		desc := c.Description
		if desc == "" {
			desc = "Show available commands"
		}
		completions = append(completions, fmt.Sprintf("%s\t%s", name, desc))
	}

	return completions, cobra.ShellCompDirectiveNoFileComp
}

// getCategoryCompletions returns project category short names for shell completion
func getCategoryCompletions(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var completions []string
	for _, short := range api.ProjectCategories {
		if strings.HasPrefix(short, toComplete) {
			name, _ := api.ProjectCategoryName(short)
			completions = append(completions, fmt.Sprintf("%s\t%s", short, name))
		}
	}

	return completions, cobra.ShellCompDirectiveNoFileComp
}

// getConfigKeyCompletions returns config key names for shell completion
func getConfigKeyCompletions(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	keys := []struct {
		name string
		desc string
	}{
		{"api.base_url", "Content API base URL"},
		{"api.timeout", "Timeout of a single request attempt"},
		{"api.retries", "Attempts per request"},
		{"api.backoff", "Delay before the first retry"},
		{"cache.ttl", "How long fetched content stays fresh"},
		{"terminal.max_history", "Scrollback entries kept"},
		{"terminal.max_recall", "Commands kept for up/down recall"},
		{"ui.color", "Enable colored output"},
		{"finder.preview", "Show a preview window in browse"},
		{"log.file", "Log file path"},
		{"log.level", "Log level (debug, info, warn, error)"},
		{"profile.name", "Name shown in the banner"},
		{"profile.role", "Role shown in the banner and about"},
		{"profile.location", "Location shown in about and contact"},
		{"profile.status", "Current status shown in about"},
		{"profile.background", "Background paragraph in about"},
		{"profile.email", "Contact email"},
		{"profile.linkedin", "LinkedIn handle"},
		{"profile.github", "GitHub handle"},
	}

	var completions []string
	for _, key := range keys {
		if strings.HasPrefix(key.name, toComplete) {
			completions = append(completions, fmt.Sprintf("%s\t%s", key.name, key.desc))
		}
	}

	return completions, cobra.ShellCompDirectiveNoFileComp
}
