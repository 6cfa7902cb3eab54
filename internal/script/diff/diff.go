// Package diff compares local script metadata against the remote script
// library and produces a change plan of create and update actions.
//
// Scripts that exist only remotely are never reported: the plan proposes
// no deletions.
package diff

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tacogips/rmmkit/internal/script/model"
)

// Kind classifies a local script relative to the remote library.
type Kind string

const (
	// KindNew means no remote script has the same name.
	KindNew Kind = "create"
	// KindChanged means a remote script with the same name differs.
	KindChanged Kind = "update"
	// KindUnchanged means all compared fields are equal.
	KindUnchanged Kind = "unchanged"
)

// Compared field names, in the order changes are listed.
const (
	FieldDescription      = "description"
	FieldOperatingSystems = "operatingSystems"
	FieldArchitecture     = "architecture"
	FieldParameters       = "parameters"
)

// FieldChange is a single differing field of a changed script.
type FieldChange struct {
	Field string      `json:"field"`
	From  interface{} `json:"from"`
	To    interface{} `json:"to"`
}

// Plan is the action proposed for one local script.
type Plan struct {
	// Kind is the classification; it doubles as the action name.
	Kind Kind `json:"action"`
	// Name is the script name.
	Name string `json:"name"`
	// RemoteID is the ID of the matching remote script, nil for new scripts.
	RemoteID *int64 `json:"id,omitempty"`
	// Script is the full local metadata; set for create plans.
	Script *model.ScriptMetadata `json:"script,omitempty"`
	// Changes lists the differing fields; set for update plans.
	Changes []FieldChange `json:"changes,omitempty"`

	// Local is the local metadata the plan was built from.
	Local model.ScriptMetadata `json:"-"`
	// Remote is the matching remote record, nil for new scripts.
	Remote *model.RemoteScript `json:"-"`
}

// HasChange reports whether the plan lists a change for field.
func (p Plan) HasChange(field string) bool {
	for _, c := range p.Changes {
		if c.Field == field {
			return true
		}
	}
	return false
}

// Classify compares one local script with its remote counterpart.
// A nil remote classifies the script as new.
func Classify(local model.ScriptMetadata, remote *model.RemoteScript) Plan {
	if remote == nil {
		l := local
		return Plan{Kind: KindNew, Name: local.Name, Script: &l, Local: local}
	}

	id := remote.ID
	plan := Plan{Name: local.Name, RemoteID: &id, Local: local, Remote: remote}

	if strings.TrimSpace(local.Description) != strings.TrimSpace(remote.Description) {
		plan.Changes = append(plan.Changes, FieldChange{
			Field: FieldDescription,
			From:  remote.Description,
			To:    local.Description,
		})
	}

	// An empty local tag set means "unspecified" and is not compared.
	if len(local.OperatingSystems) > 0 {
		from, to := model.NormalizeTags(remote.OperatingSystems), model.NormalizeTags(local.OperatingSystems)
		if !equalStrings(from, to) {
			plan.Changes = append(plan.Changes, FieldChange{Field: FieldOperatingSystems, From: from, To: to})
		}
	}
	if len(local.Architectures) > 0 {
		from, to := model.NormalizeTags(remote.Architecture), model.NormalizeTags(local.Architectures)
		if !equalStrings(from, to) {
			plan.Changes = append(plan.Changes, FieldChange{Field: FieldArchitecture, From: from, To: to})
		}
	}

	remoteParams := remote.Parameters()
	if !EqualParameters(local.Parameters, remoteParams) {
		plan.Changes = append(plan.Changes, FieldChange{
			Field: FieldParameters,
			From:  stripIDs(remoteParams),
			To:    stripIDs(local.Parameters),
		})
	}

	if len(plan.Changes) == 0 {
		plan.Kind = KindUnchanged
	} else {
		plan.Kind = KindChanged
	}
	return plan
}

// Build classifies every local script against the remote inventory.
// Plans follow the order of locals and include unchanged scripts; use
// Actionable to drop them. When several remote records share a name the
// first one wins.
func Build(locals []model.ScriptMetadata, remotes []model.RemoteScript) []Plan {
	index := IndexByName(remotes)

	plans := make([]Plan, 0, len(locals))
	for _, l := range locals {
		plans = append(plans, Classify(l, index[l.Name]))
	}
	return plans
}

// IndexByName maps script names to remote records, keeping the first record
// for duplicate names.
func IndexByName(remotes []model.RemoteScript) map[string]*model.RemoteScript {
	index := make(map[string]*model.RemoteScript, len(remotes))
	for i := range remotes {
		if _, exists := index[remotes[i].Name]; exists {
			continue
		}
		index[remotes[i].Name] = &remotes[i]
	}
	return index
}

// Actionable returns the plans that require a create or update.
func Actionable(plans []Plan) []Plan {
	out := make([]Plan, 0, len(plans))
	for _, p := range plans {
		if p.Kind != KindUnchanged {
			out = append(out, p)
		}
	}
	return out
}

// Summary counts plans by kind.
type Summary struct {
	New       int `json:"new"`
	Changed   int `json:"changed"`
	Unchanged int `json:"unchanged"`
}

// Summarize counts plans by kind.
func Summarize(plans []Plan) Summary {
	var s Summary
	for _, p := range plans {
		switch p.Kind {
		case KindNew:
			s.New++
		case KindChanged:
			s.Changed++
		case KindUnchanged:
			s.Unchanged++
		}
	}
	return s
}

// EqualParameters compares two parameter lists as order-insensitive
// multisets of (name, type, description, default, required).
func EqualParameters(a, b []model.ParameterSpec) bool {
	if len(a) != len(b) {
		return false
	}
	ka, kb := parameterKeys(a), parameterKeys(b)
	return equalStrings(ka, kb)
}

// parameterKeys returns a sorted list of comparison keys.
func parameterKeys(params []model.ParameterSpec) []string {
	keys := make([]string, 0, len(params))
	for _, p := range params {
		def := "\x00"
		if v, ok := p.DefaultValue(); ok {
			def = "=" + v
		}
		keys = append(keys, fmt.Sprintf("%s\x1f%s\x1f%s\x1f%s\x1f%t",
			p.Name, p.Type, strings.TrimSpace(p.Description), def, p.Required))
	}
	sort.Strings(keys)
	return keys
}

// stripIDs returns a copy of params without remote IDs or sources, for display.
func stripIDs(params []model.ParameterSpec) []model.ParameterSpec {
	out := make([]model.ParameterSpec, len(params))
	for i, p := range params {
		p.ID = nil
		p.Source = ""
		out[i] = p
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
