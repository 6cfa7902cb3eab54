package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tacogips/rmmkit/internal/config"
	"github.com/tacogips/rmmkit/internal/logger"
)

// Version information, set by main from ldflags.
var (
	Version   = ""
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Global flags
var (
	globalConfig  string
	globalNoColor bool
	globalQuiet   bool
	globalDebug   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rmmkit",
	Short: "RMM script library and monitoring toolkit",
	Long: `rmmkit keeps a NinjaOne script library in step with local script files
and runs monitoring checks on managed endpoints.

Use "rmmkit plan" to compare local scripts against the remote library,
"rmmkit sync" to apply the resulting creates and updates, and
"rmmkit speedtest" to measure bandwidth with the Ookla speedtest CLI.

API credentials are read from the config file or from the
NINJAONE_INSTANCE_URL, NINJAONE_CLIENT_ID and NINJAONE_CLIENT_SECRET
environment variables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Setup(logger.Options{Debug: globalDebug, NoColor: globalNoColor})
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&globalConfig, FlagConfig, "", DescConfig)
	rootCmd.PersistentFlags().BoolVar(&globalNoColor, FlagNoColor, false, DescNoColor)
	rootCmd.PersistentFlags().BoolVarP(&globalQuiet, FlagQuiet, "q", false, DescQuiet)
	rootCmd.PersistentFlags().BoolVar(&globalDebug, FlagDebug, false, DescDebug)

	// Add subcommands
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(speedtestCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads the configuration for a command. An explicit --config
// file must exist; the default location is optional.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(globalConfig)
	if err != nil {
		return nil, err
	}

	applyOutputConfig(cfg)
	return cfg, nil
}

// applyOutputConfig lets the config file enable what the flags did not.
func applyOutputConfig(cfg *config.Config) {
	changed := false
	if cfg.Output.Debug && !globalDebug {
		globalDebug, changed = true, true
	}
	if !cfg.Output.Color && !globalNoColor {
		globalNoColor, changed = true, true
	}
	if cfg.Output.Quiet {
		globalQuiet = true
	}
	if changed {
		logger.Setup(logger.Options{Debug: globalDebug, NoColor: globalNoColor})
	}
	if cfg.Output.LogLevel != "" && !globalDebug {
		logger.Level.SetByName(cfg.Output.LogLevel)
	}
}
