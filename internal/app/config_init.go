package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/tacogips/rmmkit/internal/config"
	"github.com/tacogips/rmmkit/internal/logger"
)

// InitConfigOptions contains options for configuration initialization.
type InitConfigOptions struct {
	// Path is the configuration file to create.
	Path string
	// Force backs up and overwrites an existing file if true.
	Force bool
}

// InitConfigResult holds the outcome of configuration initialization.
type InitConfigResult struct {
	// Path is the written configuration file.
	Path string
	// BackupPath is where an existing file was moved, empty if none.
	BackupPath string
}

// InitConfig writes a configuration file populated with defaults.
// Credentials are left empty to be filled in or supplied through the
// environment.
func InitConfig(ctx context.Context, opts InitConfigOptions) (*InitConfigResult, error) {
	logger.DebugSection("[app] InitConfig workflow start")
	logger.DebugValue("[app] Path", opts.Path)
	logger.DebugValue("[app] Force", opts.Force)

	path, err := config.ExpandPath(opts.Path)
	if err != nil || path == "" {
		return nil, NewValidationError("invalid configuration path", err)
	}

	result := &InitConfigResult{Path: path}

	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return nil, NewValidationError(path+" exists but is a directory", nil)
		}
		if !opts.Force {
			return nil, NewValidationError(
				"configuration already exists at "+path+" (use --force to reinitialize)", nil)
		}

		backup := fmt.Sprintf("%s.%s.bak", path, time.Now().Format("20060102150405"))
		if err := os.Rename(path, backup); err != nil {
			return nil, NewValidationError("failed to back up existing configuration", err)
		}
		result.BackupPath = backup
		logger.Debug("[app] backed up %s to %s", path, backup)
	}

	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return nil, NewValidationError("failed to write configuration", err)
	}

	logger.Debug("[app] InitConfig workflow completed")
	return result, nil
}
