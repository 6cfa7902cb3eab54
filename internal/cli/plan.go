package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tacogips/rmmkit/internal/app"
	"github.com/tacogips/rmmkit/internal/script/diff"
)

// planCmd represents the plan command
var planCmd = &cobra.Command{
	Use:   "plan [files...]",
	Short: "Show the changes needed to sync local scripts",
	Long: `Compare local script files with the remote script library and print a
JSON change plan of the creates and updates needed to reconcile them.

Scripts are matched by name (the file name without extension). Scripts
that exist only in the remote library are never reported. The plan is
printed only; nothing is written to the remote library.

When no files are given, the scripts directory from the config file
(default "scripts") is scanned recursively.

Examples:
  rmmkit plan
  rmmkit plan scripts/Speedtest.ps1
  rmmkit plan --config ./rmmkit.yaml`,
	RunE: runPlan,
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	printProgress(fmt.Sprintf("Fetching scripts from %s", cfg.API.InstanceURL))

	result, err := app.Plan(cmd.Context(), app.PlanOptions{
		Config: cfg,
		Files:  args,
	})
	if err != nil {
		printErrorMsg(fmt.Sprintf("Plan failed: %v", err))
		return err
	}

	if err := diff.Render(stdout, result.Plans); err != nil {
		return err
	}

	printSummary(result)
	return nil
}

// printSummary prints plan counts to stderr.
func printSummary(result *app.PlanResult) {
	s := result.Summary
	if s.New == 0 && s.Changed == 0 {
		printSuccess(fmt.Sprintf("All %d local scripts match the remote library", s.Unchanged))
	} else {
		printInfo(fmt.Sprintf("%d to create, %d to update, %d unchanged (%d remote scripts)",
			s.New, s.Changed, s.Unchanged, result.RemoteCount))
	}
	if len(result.Skipped) > 0 {
		printWarning(fmt.Sprintf("%d files skipped", len(result.Skipped)))
	}
}
