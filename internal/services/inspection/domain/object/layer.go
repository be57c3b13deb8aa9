package object

import "github.com/louisbranch/closerlook/internal/services/inspection/domain/zoom"

// Layer is the content attached to one object at one zoom level.
type Layer struct {
	ZoomLevel     zoom.Level `json:"zoom_level" yaml:"zoom_level"`
	Description   string     `json:"description" yaml:"description"`
	FirstTimeText string     `json:"first_time_text,omitempty" yaml:"first_time_text"`
	ReturnText    string     `json:"return_text,omitempty" yaml:"return_text"`
	ASCIIArt      string     `json:"ascii_art,omitempty" yaml:"ascii_art"`

	RevealsFacts    []string `json:"reveals_facts,omitempty" yaml:"reveals_facts"`
	RevealsItems    []string `json:"reveals_items,omitempty" yaml:"reveals_items"`
	RevealsHotspots []string `json:"reveals_hotspots,omitempty" yaml:"reveals_hotspots"`

	RequiresLight bool   `json:"requires_light" yaml:"requires_light"`
	RequiresTool  string `json:"requires_tool,omitempty" yaml:"requires_tool"`
	RequiresFact  string `json:"requires_fact,omitempty" yaml:"requires_fact"`
}

// View describes the viewer's circumstances when resolving visibility.
type View struct {
	HasTool    bool
	ToolType   string
	HasLight   bool
	KnownFacts map[string]bool
}

// CanView reports whether every precondition of the layer holds.
func (l *Layer) CanView(v View) bool {
	if l == nil {
		return false
	}
	if l.RequiresLight && !v.HasLight {
		return false
	}
	if l.RequiresTool != "" && (!v.HasTool || v.ToolType != l.RequiresTool) {
		return false
	}
	if l.RequiresFact != "" && !v.KnownFacts[l.RequiresFact] {
		return false
	}
	return true
}

// Text returns the first-time or return variant, falling back to Description.
func (l *Layer) Text(firstTime bool) string {
	if firstTime && l.FirstTimeText != "" {
		return l.FirstTimeText
	}
	if !firstTime && l.ReturnText != "" {
		return l.ReturnText
	}
	return l.Description
}
