package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tacogips/rmmkit/internal/app"
	"github.com/tacogips/rmmkit/internal/script/diff"
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync [files...]",
	Short: "Create and update remote scripts from local files",
	Long: `Build the change plan (see "rmmkit plan") and apply it: new scripts are
created and changed scripts are updated in the remote library. Existing
script variables keep their IDs. Nothing is ever deleted.

A failing script does not stop the others; the command exits non-zero if
any script failed.

Examples:
  rmmkit sync --dry-run
  rmmkit sync scripts/Speedtest.ps1
  rmmkit sync --yes`,
	RunE: runSync,
}

// Sync command flags
var (
	syncDryRun bool
	syncYes    bool
)

func init() {
	// Flags for sync
	syncCmd.Flags().BoolVarP(&syncDryRun, FlagDryRun, "d", false, DescDryRun)
	syncCmd.Flags().BoolVarP(&syncYes, FlagYes, "y", false, DescYes)
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	planOpts := app.PlanOptions{Config: cfg, Files: args}

	// Plan first so the user confirms what will actually be written.
	plan, err := app.Plan(cmd.Context(), planOpts)
	if err != nil {
		printErrorMsg(fmt.Sprintf("Plan failed: %v", err))
		return err
	}

	actions := plan.Actionable()
	if len(actions) == 0 {
		printSummary(plan)
		return nil
	}

	if syncDryRun {
		printInfo("[DRY RUN] Would apply:")
	}
	if err := diff.Render(stdout, plan.Plans); err != nil {
		return err
	}
	printSummary(plan)

	if syncDryRun {
		printInfo("No scripts written (dry run).")
		return nil
	}

	ok, err := confirmPlan(actions, syncYes)
	if err != nil {
		return err
	}
	if !ok {
		printWarning("Sync cancelled")
		return nil
	}

	result, err := app.Sync(cmd.Context(), app.SyncOptions{PlanOptions: planOpts, Plan: plan})
	if err != nil {
		printErrorMsg(fmt.Sprintf("Sync failed: %v", err))
		return err
	}

	printHeader("Sync")
	for _, name := range result.Created {
		printSuccess("Created " + name)
	}
	for _, name := range result.Updated {
		printSuccess("Updated " + name)
	}
	for _, f := range result.Failed {
		printErrorMsg(fmt.Sprintf("%s: %v", f.Name, f.Err))
	}

	return result.Err()
}
