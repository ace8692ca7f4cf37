// Package cmd provides CLI commands for the termfolio application.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/bubbletea"
	"github.com/d-kuro/termfolio/internal/config"
	"github.com/d-kuro/termfolio/internal/tui"
	"github.com/d-kuro/termfolio/pkg/cache"
	"github.com/d-kuro/termfolio/pkg/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "termfolio",
	Short: "Terminal-styled portfolio",
	Long: `termfolio is a portfolio you explore from a command line.

Type commands such as about, skills, projects and contact at the prompt.
Work history, skills and projects are fetched from the portfolio content API
and cached for the session.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Write debug entries to the log file")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext()
	if err != nil {
		return err
	}
	defer cc.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg := cc.Config
	model := tui.New(tui.Options{
		Deps:       cc.Deps(),
		MaxHistory: cfg.Terminal.MaxHistory,
		MaxRecall:  cfg.Terminal.MaxRecall,
		JobTimeout: tui.JobTimeout(cfg.API),
		Context:    ctx,
		Logger:     cc.Logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	config.Watch(func(updated *models.Config) {
		cc.Logger.Info("config changed, reloading profile")
		p.Send(tui.ProfileChanged{Profile: updated.Profile})
	})
	go sweepCache(ctx, cc.Cache, cfg.Cache.TTL)

	cc.Logger.Info("starting terminal",
		zap.String("api", cc.Client.BaseURL()),
		zap.Duration("cache_ttl", cfg.Cache.TTL),
	)

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run terminal: %w", err)
	}
	return nil
}

// sweepCache drops stale payloads once per TTL until ctx is done.
func sweepCache(ctx context.Context, store *cache.Cache[string, []byte], ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	ticker := time.NewTicker(ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			store.CleanExpired()
		}
	}
}
