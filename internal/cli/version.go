package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/tacogips/rmmkit/internal/build"
	"github.com/tacogips/rmmkit/internal/speedtest"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Display the rmmkit version, the build it came from and the pinned
speedtest CLI version installed by "rmmkit speedtest".

Examples:
  rmmkit version
  rmmkit version --short
  rmmkit version --json`,
	Args: cobra.NoArgs,
	RunE: runVersion,
}

// Version command flags
var (
	versionShort bool
	versionJSON  bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Show version number only")
	versionCmd.Flags().BoolVar(&versionJSON, FlagJSON, false, DescJSON)
}

// VersionInfo describes the running binary.
type VersionInfo struct {
	Version      string `json:"version"`
	Commit       string `json:"commit"`
	BuildDate    string `json:"build_date"`
	GoVersion    string `json:"go_version"`
	Platform     string `json:"platform"`
	SpeedtestCLI string `json:"speedtest_cli"`
}

func currentVersion() string {
	if Version != "" {
		return Version
	}
	return build.Version()
}

// versionInfo collects the version details. Without ldflags the commit and
// build date fall back to the VCS stamp Go embeds in the binary.
func versionInfo() VersionInfo {
	info := VersionInfo{
		Version:      currentVersion(),
		Commit:       GitCommit,
		BuildDate:    BuildDate,
		GoVersion:    runtime.Version(),
		Platform:     runtime.GOOS + "/" + runtime.GOARCH,
		SpeedtestCLI: speedtest.DefaultVersion,
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && info.Commit == "unknown":
				info.Commit = s.Value
			case s.Key == "vcs.time" && info.BuildDate == "unknown":
				info.BuildDate = s.Value
			}
		}
	}
	return info
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := versionInfo()

	switch {
	case versionShort:
		fmt.Fprintln(stdout, info.Version)
	case versionJSON:
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal version info: %w", err)
		}
		fmt.Fprintln(stdout, string(data))
	default:
		writeVersion(stdout, info)
	}
	return nil
}

func writeVersion(w io.Writer, info VersionInfo) {
	fmt.Fprintf(w, "rmmkit %s (%s)\n", info.Version, info.Platform)
	fmt.Fprintf(w, "  commit:        %s\n", info.Commit)
	fmt.Fprintf(w, "  built:         %s with %s\n", info.BuildDate, info.GoVersion)
	fmt.Fprintf(w, "  speedtest CLI: %s (pinned)\n", info.SpeedtestCLI)
}
