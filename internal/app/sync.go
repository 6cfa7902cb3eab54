package app

import (
	"context"
	"fmt"

	"github.com/tacogips/rmmkit/internal/logger"
	"github.com/tacogips/rmmkit/internal/script/diff"
	"github.com/tacogips/rmmkit/internal/script/model"
)

// SyncOptions holds options for applying a change plan.
type SyncOptions struct {
	PlanOptions
	// DryRun builds the plan without calling create or update.
	DryRun bool
	// Plan is an already built plan to apply. When nil a plan is built.
	Plan *PlanResult
}

// SyncFailure is a script whose create or update failed.
type SyncFailure struct {
	Name string
	Err  error
}

// SyncResult holds the outcome of a sync.
type SyncResult struct {
	// Plan is the change plan that was applied.
	Plan *PlanResult
	// Created lists scripts created in the remote library.
	Created []string
	// Updated lists scripts updated in the remote library.
	Updated []string
	// Failed lists scripts whose create or update failed.
	Failed []SyncFailure
	// DryRun is true when nothing was written.
	DryRun bool
}

// Sync builds the change plan and applies each create and update. A failing
// script does not stop the others; failures are collected in the result.
func Sync(ctx context.Context, opts SyncOptions) (*SyncResult, error) {
	logger.DebugSection("[app] Sync workflow start")
	logger.DebugValue("[app] DryRun", opts.DryRun)

	if opts.Config == nil {
		return nil, NewValidationError("configuration is required", nil)
	}
	lib, err := libraryFor(opts.Config, opts.Library)
	if err != nil {
		return nil, err
	}
	opts.Library = lib

	plan := opts.Plan
	if plan == nil {
		plan, err = Plan(ctx, opts.PlanOptions)
		if err != nil {
			return nil, err
		}
	}

	result := &SyncResult{Plan: plan, DryRun: opts.DryRun}
	if opts.DryRun {
		return result, nil
	}

	for _, p := range plan.Actionable() {
		if err := ctx.Err(); err != nil {
			return result, NewSyncError("sync interrupted", err)
		}

		payload := BuildPayload(p)
		switch p.Kind {
		case diff.KindNew:
			logger.Info("creating script %s", p.Name)
			if _, err := lib.CreateScript(ctx, payload); err != nil {
				logger.Error("create %s failed: %v", p.Name, err)
				result.Failed = append(result.Failed, SyncFailure{Name: p.Name, Err: err})
				continue
			}
			result.Created = append(result.Created, p.Name)
		case diff.KindChanged:
			logger.Info("updating script %s (id %d)", p.Name, *p.RemoteID)
			if _, err := lib.UpdateScript(ctx, *p.RemoteID, payload); err != nil {
				logger.Error("update %s failed: %v", p.Name, err)
				result.Failed = append(result.Failed, SyncFailure{Name: p.Name, Err: err})
				continue
			}
			result.Updated = append(result.Updated, p.Name)
		}
	}

	return result, nil
}

// Err returns a SyncFailed error summarizing failures, or nil.
func (r *SyncResult) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	return NewSyncError(fmt.Sprintf("%d of %d scripts failed to sync", len(r.Failed),
		len(r.Failed)+len(r.Created)+len(r.Updated)), r.Failed[0].Err)
}

// BuildPayload converts a plan into a create or update request body.
// Variables keep the remote variable ID of the same name so existing
// variables are updated rather than recreated.
func BuildPayload(p diff.Plan) model.ScriptPayload {
	ids := make(map[string]int64)
	if p.Remote != nil {
		for _, v := range p.Remote.Variables {
			if _, ok := ids[v.Name]; !ok {
				ids[v.Name] = v.ID
			}
		}
	}

	vars := make([]model.ParameterSpec, 0, len(p.Local.Parameters))
	for _, param := range p.Local.Parameters {
		param.ID = nil
		if id, ok := ids[param.Name]; ok {
			id := id
			param.ID = &id
		}
		param.Source = model.VarSourceLiteral
		vars = append(vars, param)
	}

	return model.ScriptPayload{
		Name:        p.Local.Name,
		Description: p.Local.Description,
		ScriptConfig: model.ScriptConfig{
			Language: p.Local.Language,
			Text:     p.Local.Text,
		},
		Variables:        vars,
		OperatingSystems: p.Local.OperatingSystems,
		Architecture:     p.Local.Architectures,
	}
}
