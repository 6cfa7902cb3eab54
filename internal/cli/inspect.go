package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tacogips/rmmkit/internal/app"
	"github.com/tacogips/rmmkit/internal/script/model"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <files...>",
	Short: "Show the metadata extracted from script files",
	Long: `Extract and print the metadata the plan and sync commands would read
from each script: description, parameters, and OS/architecture tags.
No API credentials are needed.

Examples:
  rmmkit inspect scripts/Speedtest.ps1
  rmmkit inspect scripts/*.ps1 --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInspect,
}

// Inspect command flags
var inspectJSON bool

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSON, FlagJSON, false, DescJSON)
}

func runInspect(cmd *cobra.Command, args []string) error {
	result, err := app.Inspect(cmd.Context(), app.InspectOptions{Files: args})
	if err != nil {
		return err
	}

	if inspectJSON {
		data, err := json.MarshalIndent(result.Scripts, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal metadata: %w", err)
		}
		fmt.Fprintln(stdout, string(data))
		return nil
	}

	for i, s := range result.Scripts {
		if i > 0 {
			fmt.Fprintln(stdout)
		}
		writeMetadata(s)
	}
	return nil
}

// writeMetadata prints one script's metadata as text.
func writeMetadata(s model.ScriptMetadata) {
	fmt.Fprintf(stdout, "%s (%s)\n", s.Name, s.Language)
	fmt.Fprintf(stdout, "  Path:         %s\n", s.Path)
	fmt.Fprintf(stdout, "  Description:  %s\n", orNone(s.Description))
	fmt.Fprintf(stdout, "  OS:           %s\n", orNone(strings.Join(s.OperatingSystems, ", ")))
	fmt.Fprintf(stdout, "  Architecture: %s\n", orNone(strings.Join(s.Architectures, ", ")))

	if len(s.Parameters) == 0 {
		fmt.Fprintln(stdout, "  Parameters:   (none)")
		return
	}
	fmt.Fprintln(stdout, "  Parameters:")
	for _, p := range s.Parameters {
		line := fmt.Sprintf("    - %s [%s]", p.Name, p.Type)
		if p.Required {
			line += " required"
		}
		if v, ok := p.DefaultValue(); ok {
			line += fmt.Sprintf(" default=%q", v)
		}
		if p.Description != "" {
			line += ": " + p.Description
		}
		fmt.Fprintln(stdout, line)
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
