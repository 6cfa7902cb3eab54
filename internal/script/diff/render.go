package diff

import (
	"encoding/json"
	"fmt"
	"io"
)

// Document is the JSON shape of a printed change plan.
type Document struct {
	Summary Summary `json:"summary"`
	Plans   []Plan  `json:"plans"`
}

// NewDocument builds the printable document for plans. Unchanged scripts
// are counted in the summary but not listed.
func NewDocument(plans []Plan) Document {
	return Document{
		Summary: Summarize(plans),
		Plans:   Actionable(plans),
	}
}

// Render writes the change plan as indented JSON.
func Render(w io.Writer, plans []Plan) error {
	data, err := json.MarshalIndent(NewDocument(plans), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal change plan: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return fmt.Errorf("failed to write change plan: %w", err)
	}
	return nil
}
