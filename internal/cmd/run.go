package cmd

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/d-kuro/termfolio/internal/portfolio"
	"github.com/d-kuro/termfolio/internal/render"
	"github.com/d-kuro/termfolio/internal/terminal"
	"github.com/d-kuro/termfolio/internal/tui"
	"github.com/d-kuro/termfolio/pkg/models"
	"github.com/d-kuro/termfolio/pkg/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// runCmd represents the run command.
var runCmd = &cobra.Command{
	Use:   "run <command>",
	Short: "Run one terminal command",
	Long: `Run a single terminal command without starting the interactive terminal
and print its output at the width of the current terminal.`,
	Example: `  # Show the skills panel
  termfolio run skills

  # Show infrastructure projects
  termfolio run projects-infra`,
	Args:              cobra.ExactArgs(1),
	RunE:              runRun,
	ValidArgsFunction: getTerminalCommandCompletions,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext()
	if err != nil {
		return err
	}
	defer cc.Close()

	deps := cc.Deps()
	timeout := tui.JobTimeout(cc.Config.API)
	if strings.EqualFold(strings.TrimSpace(args[0]), "about") {
		jobs, err := fetchJobs(cmd.Context(), cc, timeout)
		if err != nil {
			cc.Logger.Warn("failed to load jobs", zap.Error(err))
		}
		deps.Jobs = jobs
	}

	entries := executeCommand(cmd.Context(), deps, args[0], timeout)
	width := terminalWidth()

	var failure error
	for _, e := range entries {
		switch e.Kind {
		case terminal.KindOutput:
			cc.Printer.Print(e.Output.Render(width))
		case terminal.KindError:
			failure = errors.New(e.Text)
		}
	}
	return failure
}

// fetchJobs loads the work history the about panel lists.
func fetchJobs(ctx context.Context, cc *CommandContext, timeout time.Duration) ([]models.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return cc.Client.Jobs(ctx)
}

// executeCommand submits raw to a fresh terminal, runs any async work to
// completion and returns the resulting entries without the banner and echo.
func executeCommand(ctx context.Context, deps portfolio.Deps, raw string, timeout time.Duration) []terminal.Entry {
	state := terminal.New(portfolio.Commands(deps), portfolio.Banner(deps.Profile))

	state, jobs := terminal.Reduce(state, terminal.Submit{Raw: raw})
	for _, job := range jobs {
		jobCtx, cancel := context.WithTimeout(ctx, timeout)
		state, _ = terminal.Reduce(state, job.Run(jobCtx))
		cancel()
	}

	return utils.Filter(state.History, func(e terminal.Entry) bool {
		return e.Kind != terminal.KindBanner && e.Kind != terminal.KindCommand
	})
}

// terminalWidth returns the width of stdout, or the default panel width
// when stdout is not a terminal.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return render.DefaultWidth
	}
	return width
}
