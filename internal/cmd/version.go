package cmd

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Show detailed version information including build details.`,
	Run: func(cmd *cobra.Command, args []string) {
		info, _ := debug.ReadBuildInfo()
		writeVersion(cmd.OutOrStdout(), info)
	},
}

// vcsInfo is the version control state stamped into the binary.
type vcsInfo struct {
	revision string
	time     string
	modified bool
}

func readVCS(info *debug.BuildInfo) vcsInfo {
	var v vcsInfo
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			v.revision = setting.Value
		case "vcs.time":
			v.time = setting.Value
		case "vcs.modified":
			v.modified = setting.Value == "true"
		}
	}
	return v
}

// writeVersion prints build details. A nil info falls back to the values
// set with -ldflags.
func writeVersion(w io.Writer, info *debug.BuildInfo) {
	if info == nil {
		_, _ = fmt.Fprintf(w, "termfolio version %s\n", version)
		_, _ = fmt.Fprintf(w, "  commit: %s\n", commit)
		_, _ = fmt.Fprintf(w, "  built: %s\n", date)
		_, _ = fmt.Fprintf(w, "  go: %s\n", runtime.Version())
		_, _ = fmt.Fprintf(w, "  os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		return
	}

	vcs := readVCS(info)
	_, _ = fmt.Fprintf(w, "termfolio version %s\n", getVersion(info, vcs))
	if vcs.revision != "" {
		_, _ = fmt.Fprintf(w, "  commit: %s\n", vcs.revision)
		if vcs.modified {
			_, _ = fmt.Fprintln(w, "  modified: true")
		}
	}
	if vcs.time != "" {
		_, _ = fmt.Fprintf(w, "  built: %s\n", vcs.time)
	}
	_, _ = fmt.Fprintf(w, "  go: %s\n", info.GoVersion)
	_, _ = fmt.Fprintf(w, "  os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

func getVersion(info *debug.BuildInfo, vcs vcsInfo) string {
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	if version != "dev" {
		return version
	}
	if vcs.revision != "" {
		return vcs.revision[:min(7, len(vcs.revision))]
	}
	return "dev"
}
