package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tacogips/rmmkit/internal/app"
	"github.com/tacogips/rmmkit/internal/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a configuration file with defaults",
	Long: `Write a configuration file populated with the default settings.

The file is written to --config, or ~/.config/rmmkit/config.yaml when
not given. API credentials are left empty; fill them in or set the
NINJAONE_* environment variables.

Examples:
  rmmkit init
  rmmkit init --config ./rmmkit.yaml
  rmmkit init --force`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

// Init command flags
var initForce bool

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Backup existing config and reinitialize")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := globalConfig
	if path == "" {
		path = config.DefaultConfigPath()
	}

	result, err := app.InitConfig(cmd.Context(), app.InitConfigOptions{
		Path:  path,
		Force: initForce,
	})
	if err != nil {
		return err
	}

	if result.BackupPath != "" {
		printWarning(fmt.Sprintf("Existing configuration moved to %s", result.BackupPath))
	}
	printSuccess(fmt.Sprintf("Configuration written to %s", result.Path))
	return nil
}
