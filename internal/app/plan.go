package app

import (
	"context"
	"strings"
	"time"

	"github.com/tacogips/rmmkit/internal/config"
	"github.com/tacogips/rmmkit/internal/logger"
	"github.com/tacogips/rmmkit/internal/ninjaone"
	"github.com/tacogips/rmmkit/internal/script/diff"
	"github.com/tacogips/rmmkit/internal/script/model"
)

// ScriptLibrary is the remote script library. *ninjaone.Client implements it.
type ScriptLibrary interface {
	ListScripts(ctx context.Context) ([]model.RemoteScript, error)
	CreateScript(ctx context.Context, payload model.ScriptPayload) (*model.RemoteScript, error)
	UpdateScript(ctx context.Context, id int64, payload model.ScriptPayload) (*model.RemoteScript, error)
}

// PlanOptions holds options for building a change plan.
type PlanOptions struct {
	// Config is the loaded configuration.
	Config *config.Config
	// Files are explicit script paths. When empty, Config.Sync.ScriptsDir is scanned.
	Files []string
	// Library overrides the remote script library (tests).
	Library ScriptLibrary
}

// PlanResult holds the change plan.
type PlanResult struct {
	// Plans contains one plan per local script, unchanged ones included.
	Plans []diff.Plan
	// Summary counts plans by kind.
	Summary diff.Summary
	// Skipped lists local paths that were not considered.
	Skipped []string
	// RemoteCount is the number of scripts in the remote library.
	RemoteCount int
}

// Actionable returns the create and update plans.
func (r *PlanResult) Actionable() []diff.Plan {
	return diff.Actionable(r.Plans)
}

// Plan authenticates, fetches the remote inventory, extracts local scripts
// and diffs them. It never writes to the remote library.
func Plan(ctx context.Context, opts PlanOptions) (*PlanResult, error) {
	logger.DebugSection("[app] Plan workflow start")
	defer logger.Since("plan", time.Now())

	if opts.Config == nil {
		return nil, NewValidationError("configuration is required", nil)
	}

	lib, err := libraryFor(opts.Config, opts.Library)
	if err != nil {
		return nil, err
	}

	remotes, err := lib.ListScripts(ctx)
	if err != nil {
		return nil, remoteError(err)
	}
	logger.Debug("[app] remote library has %d scripts", len(remotes))

	collected, err := CollectScripts(ctx, CollectOptions{
		Files: opts.Files,
		Dir:   opts.Config.Sync.ScriptsDir,
	})
	if err != nil {
		return nil, err
	}

	plans := diff.Build(collected.Scripts, remotes)
	result := &PlanResult{
		Plans:       plans,
		Summary:     diff.Summarize(plans),
		Skipped:     collected.Skipped,
		RemoteCount: len(remotes),
	}

	logger.DebugJSON("[app] plan summary", result.Summary)
	return result, nil
}

// libraryFor returns lib when set, otherwise an API client built from cfg.
func libraryFor(cfg *config.Config, lib ScriptLibrary) (ScriptLibrary, error) {
	if lib != nil {
		return lib, nil
	}
	if err := config.ValidateAPI(cfg); err != nil {
		return nil, NewValidationError("API credentials are not configured", err)
	}
	return ninjaone.NewClient(ninjaone.Options{
		InstanceURL:  cfg.API.InstanceURL,
		ClientID:     cfg.API.ClientID,
		ClientSecret: cfg.API.ClientSecret,
		Scopes:       strings.Fields(cfg.API.Scope),
		Timeout:      time.Duration(cfg.API.Timeout) * time.Second,
	}), nil
}

// remoteError maps a client error onto the application error types.
func remoteError(err error) error {
	if ninjaone.IsType(err, ninjaone.ErrorAuthFailed) {
		return NewAuthError("authentication failed", err)
	}
	return NewFetchError("failed to fetch remote scripts", err)
}
