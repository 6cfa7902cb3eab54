package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tacogips/rmmkit/internal/config"
	"github.com/tacogips/rmmkit/internal/logger"
)

// Common flag names and descriptions
const (
	// Flag names
	FlagConfig   = "config"
	FlagDryRun   = "dry-run"
	FlagYes      = "yes"
	FlagJSON     = "json"
	FlagServerID = "server-id"
	FlagNoColor  = "no-color"
	FlagQuiet    = "quiet"
	FlagDebug    = "debug"

	// Flag descriptions
	DescConfig   = "Path to config file (default ~/.config/rmmkit/config.yaml)"
	DescDryRun   = "Show actions without execution"
	DescYes      = "Apply without asking for confirmation"
	DescJSON     = "Output as JSON"
	DescServerID = "Speedtest server ID (0 lets the CLI choose)"
	DescNoColor  = "Disable colored output"
	DescQuiet    = "Suppress output"
	DescDebug    = "Enable debug logging"
)

// parseServerID parses a server ID argument. Zero means "let the CLI choose".
func parseServerID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("server ID must be an integer, got %q", raw)
	}
	if id < 0 {
		return 0, fmt.Errorf("server ID cannot be negative: %d", id)
	}
	return id, nil
}

// resolveServerID picks the server ID for a speed test run. The
// SPEEDTEST_SERVER_ID environment variable wins, then the positional
// argument, then the --server-id flag, then the config file. A non-positive
// environment or config value lets the CLI choose; an unparsable
// environment value is logged and skipped.
func resolveServerID(args []string, flagValue int, flagSet bool, cfg *config.Config, lookup config.LookupEnv) (int, error) {
	if v, ok := lookup(config.EnvSpeedtestServerID); ok && strings.TrimSpace(v) != "" {
		id, err := strconv.Atoi(strings.TrimSpace(v))
		if err == nil {
			return max(id, 0), nil
		}
		logger.Warn("ignoring %s=%q: not an integer", config.EnvSpeedtestServerID, v)
	}
	if len(args) > 0 {
		return parseServerID(args[0])
	}
	if flagSet {
		if flagValue < 0 {
			return 0, fmt.Errorf("server ID cannot be negative: %d", flagValue)
		}
		return flagValue, nil
	}
	return max(cfg.Speedtest.ServerID, 0), nil
}
