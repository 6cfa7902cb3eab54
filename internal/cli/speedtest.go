package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tacogips/rmmkit/internal/app"
	"github.com/tacogips/rmmkit/internal/speedtest"
)

// speedtestCmd represents the speedtest command
var speedtestCmd = &cobra.Command{
	Use:   "speedtest [server-id]",
	Short: "Measure bandwidth with the Ookla speedtest CLI",
	Long: `Run a bandwidth test with the Ookla speedtest CLI and print a report
followed by KEY=VALUE metrics for the monitoring platform.

The CLI is looked up in the install directory (speedtest.install_dir) and
then on PATH. When absent, the pinned version is downloaded and installed.

A positive server ID selects the test server. The SPEEDTEST_SERVER_ID
environment variable overrides the argument and the --server-id flag.

The command exits 1 on any failure and prints no metrics in that case.

Examples:
  rmmkit speedtest
  rmmkit speedtest 12345
  SPEEDTEST_SERVER_ID=12345 rmmkit speedtest`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSpeedtest,
}

// Speedtest command flags
var speedtestServerID int

// speedtestRunner overrides the process runner (tests).
var speedtestRunner speedtest.Runner

func init() {
	speedtestCmd.Flags().IntVar(&speedtestServerID, FlagServerID, 0, DescServerID)
}

func runSpeedtest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	serverID, err := resolveServerID(args, speedtestServerID, cmd.Flags().Changed(FlagServerID), cfg, os.LookupEnv)
	if err != nil {
		return err
	}

	if serverID > 0 {
		printProgress(fmt.Sprintf("Running speed test against server %d", serverID))
	} else {
		printProgress("Running speed test")
	}

	result, err := app.Speedtest(cmd.Context(), app.SpeedtestOptions{
		Config:   cfg,
		ServerID: serverID,
		Runner:   speedtestRunner,
	})
	if err != nil {
		return err
	}

	if result.Installed {
		printSuccess(fmt.Sprintf("Installed speedtest CLI at %s", result.Path))
	}

	return speedtest.Report(stdout, result.Result)
}
