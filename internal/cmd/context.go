package cmd

import (
	"fmt"

	"github.com/d-kuro/termfolio/internal/api"
	"github.com/d-kuro/termfolio/internal/config"
	"github.com/d-kuro/termfolio/internal/finder"
	"github.com/d-kuro/termfolio/internal/logging"
	"github.com/d-kuro/termfolio/internal/portfolio"
	"github.com/d-kuro/termfolio/internal/ui"
	"github.com/d-kuro/termfolio/pkg/cache"
	"github.com/d-kuro/termfolio/pkg/models"
	"go.uber.org/zap"
)

// CommandContext encapsulates common dependencies used across commands.
type CommandContext struct {
	Config  *models.Config
	Client  *api.Client
	Cache   *cache.Cache[string, []byte]
	Logger  *zap.Logger
	Printer *ui.Printer
	finder  *finder.Finder // Lazy-loaded
}

// NewCommandContext loads the config and builds the logger, the response
// cache and the API client from it.
func NewCommandContext() (*CommandContext, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Log, verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	store := cache.New[string, []byte](cache.TTL(cfg.Cache.TTL))
	client := api.New(cfg.API.BaseURL,
		api.WithCache(store),
		api.WithRetries(cfg.API.Retries),
		api.WithTimeout(cfg.API.Timeout),
		api.WithBackoff(cfg.API.Backoff),
		api.WithLogger(logger),
	)

	printer := ui.New(&cfg.UI)
	printer.Apply()

	return &CommandContext{
		Config:  cfg,
		Client:  client,
		Cache:   store,
		Logger:  logger,
		Printer: printer,
	}, nil
}

// GetFinder returns a finder instance, creating it if needed.
func (ctx *CommandContext) GetFinder() *finder.Finder {
	if ctx.finder == nil {
		ctx.finder = finder.New(&ctx.Config.Finder)
	}
	return ctx.finder
}

// Deps returns what the terminal command table is built from.
func (ctx *CommandContext) Deps() portfolio.Deps {
	return portfolio.Deps{
		Source:  ctx.Client,
		Profile: ctx.Config.Profile,
		Logger:  ctx.Logger,
	}
}

// Close flushes buffered log entries.
func (ctx *CommandContext) Close() {
	_ = ctx.Logger.Sync()
}
