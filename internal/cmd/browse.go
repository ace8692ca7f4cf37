package cmd

import (
	"errors"
	"fmt"

	"github.com/d-kuro/termfolio/internal/finder"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"
)

// browseCmd represents the browse command.
var browseCmd = &cobra.Command{
	Use:   "browse <projects|jobs>",
	Short: "Pick a project or job with a fuzzy finder",
	Long: `Browse projects or work history in a fuzzy finder.

The highlighted item's panel is shown in a preview window (see finder.preview).
The chosen item's panel is printed when the finder closes.`,
	Example: `  # Pick a project
  termfolio browse projects

  # Pick a job
  termfolio browse jobs`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"projects", "jobs"},
	RunE:      runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext()
	if err != nil {
		return err
	}
	defer cc.Close()

	width := terminalWidth()
	switch args[0] {
	case "projects":
		projects, err := cc.Client.Projects(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to fetch projects: %w", err)
		}
		project, err := cc.GetFinder().SelectProject(projects)
		if err != nil {
			return ignoreAbort(err)
		}
		cc.Printer.Print(finder.ProjectPanel(*project, width))

	case "jobs":
		jobs, err := cc.Client.Jobs(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to fetch jobs: %w", err)
		}
		job, err := cc.GetFinder().SelectJob(jobs)
		if err != nil {
			return ignoreAbort(err)
		}
		cc.Printer.Print(finder.JobPanel(*job, width))
	}
	return nil
}

// ignoreAbort treats closing the finder without a choice as success.
func ignoreAbort(err error) error {
	if errors.Is(err, fuzzyfinder.ErrAbort) {
		return nil
	}
	return err
}
