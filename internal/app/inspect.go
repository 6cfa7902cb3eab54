package app

import (
	"context"

	"github.com/tacogips/rmmkit/internal/logger"
	"github.com/tacogips/rmmkit/internal/script/model"
)

// InspectOptions holds options for inspecting local scripts.
type InspectOptions struct {
	// Files are explicit script paths. When empty, Dir is scanned.
	Files []string
	// Dir is scanned recursively when no files are given.
	Dir string
}

// InspectResult holds extracted metadata.
type InspectResult struct {
	Scripts []model.ScriptMetadata
	Skipped []string
}

// Inspect extracts metadata from local scripts without contacting the
// remote library.
func Inspect(ctx context.Context, opts InspectOptions) (*InspectResult, error) {
	logger.DebugSection("[app] Inspect workflow start")

	collected, err := CollectScripts(ctx, CollectOptions{Files: opts.Files, Dir: opts.Dir})
	if err != nil {
		return nil, err
	}
	return &InspectResult{Scripts: collected.Scripts, Skipped: collected.Skipped}, nil
}
