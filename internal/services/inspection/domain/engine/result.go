package engine

import (
	"github.com/louisbranch/closerlook/internal/services/inspection/domain/progress"
	"github.com/louisbranch/closerlook/internal/services/inspection/domain/zoom"
)

// Reason is a machine-readable failure cause carried by unsuccessful results.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonNoTarget         Reason = "no_target"
	ReasonTargetNotFound   Reason = "target_not_found"
	ReasonToolMissing      Reason = "tool_missing"
	ReasonToolUnknown      Reason = "tool_unknown"
	ReasonToolNotOwned     Reason = "tool_not_owned"
	ReasonToolUnusable     Reason = "tool_unusable"
	ReasonLevelUnreachable Reason = "level_unreachable"
	ReasonAtBoundary       Reason = "at_boundary"
	ReasonNothingFound     Reason = "nothing_found"
)

// Result is the outcome of one inspection command. User-facing failures are
// results with Success false, never Go errors.
type Result struct {
	Success     bool       `json:"success"`
	Target      string     `json:"target,omitempty"`
	Description string     `json:"description"`
	ZoomLevel   zoom.Level `json:"zoom_level"`
	ASCIIArt    string     `json:"ascii_art,omitempty"`

	// Revealed* list everything visible at ZoomLevel, including identifiers
	// the player already knew.
	RevealedFacts    []string `json:"revealed_facts,omitempty"`
	RevealedItems    []string `json:"revealed_items,omitempty"`
	RevealedHotspots []string `json:"revealed_hotspots,omitempty"`
	// Discovered lists only what this call unlocked for the first time.
	Discovered []progress.Discovery `json:"discovered,omitempty"`

	Hint  string `json:"hint,omitempty"`
	Error Reason `json:"error,omitempty"`
}

// NewFacts returns the ids of facts first discovered by this result.
func (r Result) NewFacts() []string {
	var out []string
	for _, d := range r.Discovered {
		if d.Kind == progress.KindFact {
			out = append(out, d.ID)
		}
	}
	return out
}
