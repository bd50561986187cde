package engine

import "fmt"

// DiagnosticKind classifies a non-fatal problem met while generating a layout.
type DiagnosticKind string

const (
	// A fitting relation exists but no support face had room for it; the
	// fitting is placed without it.
	DiagUnsatisfiedRelation DiagnosticKind = "unsatisfied_relation"
	// Duplicate or opposite wall constraints were dropped from a unit.
	DiagWallConflict DiagnosticKind = "wall_conflict"
	// An attachment would have joined a unit to itself and was skipped.
	DiagAttachmentCycle DiagnosticKind = "attachment_cycle"
	// A unit has no candidate that fits the room.
	DiagEmptyDomain DiagnosticKind = "empty_domain"
	// The search hit the configured candidate limit.
	DiagSearchLimit DiagnosticKind = "search_limit"
	// Every combination of candidates was tried without success.
	DiagNoLayout DiagnosticKind = "no_layout"
)

// Diagnostic is an advisory message returned alongside a result.
type Diagnostic struct {
	Kind           DiagnosticKind `json:"kind"`
	FittingModelID string         `json:"fitting_model_id,omitempty"`
	Message        string         `json:"message"`
}

func (d Diagnostic) String() string {
	if d.FittingModelID != "" {
		return fmt.Sprintf("%s [%s]: %s", d.Kind, d.FittingModelID, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}
