// Package tool models the instruments a player can inspect objects with.
//
// A tool is a capability descriptor: which affordances it grants, how much
// it deepens the zoom, and the physical conditions (light, proximity, minimum
// subject size) under which it works. Tools carry no player state.
package tool

// Type identifies a tool kind, e.g. "magnifying_glass".
type Type string

// Tool describes one inspection instrument.
type Tool struct {
	Type             Type         `json:"type" yaml:"type"`
	Name             string       `json:"name" yaml:"name"`
	Description      string       `json:"description,omitempty" yaml:"description"`
	Aliases          []string     `json:"aliases,omitempty" yaml:"aliases"`
	Affordances      []Affordance `json:"affordances" yaml:"affordances"`
	ZoomBonus        int          `json:"zoom_bonus" yaml:"zoom_bonus"`
	DetailMultiplier float64      `json:"detail_multiplier" yaml:"detail_multiplier"`
	RequiresLight    bool         `json:"requires_light" yaml:"requires_light"`
	// RequiresProximity limits use to subjects within EffectiveRange.
	RequiresProximity bool    `json:"requires_proximity" yaml:"requires_proximity"`
	EffectiveRange    float64 `json:"effective_range" yaml:"effective_range"`
	MinSize           float64 `json:"min_size" yaml:"min_size"`
}

// Reason explains why a tool cannot be used on a subject.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonNeedsLight
	ReasonOutOfRange
	ReasonTooSmall
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonNeedsLight:
		return "needs_light"
	case ReasonOutOfRange:
		return "out_of_range"
	case ReasonTooSmall:
		return "too_small"
	default:
		return "unknown"
	}
}

// HasAffordance reports whether the tool grants a.
func (t Tool) HasAffordance(a Affordance) bool {
	for _, have := range t.Affordances {
		if have == a {
			return true
		}
	}
	return false
}

// HasAffordances reports whether the tool grants every affordance in required.
func (t Tool) HasAffordances(required ...Affordance) bool {
	for _, a := range required {
		if !t.HasAffordance(a) {
			return false
		}
	}
	return true
}

// Inspectability returns the first condition that prevents using the tool,
// checked in order: light, range, size.
func (t Tool) Inspectability(distance, size float64, hasLight bool) Reason {
	if t.RequiresLight && !hasLight {
		return ReasonNeedsLight
	}
	if t.RequiresProximity && distance > t.EffectiveRange {
		return ReasonOutOfRange
	}
	if size < t.MinSize {
		return ReasonTooSmall
	}
	return ReasonNone
}

// CanInspect reports whether the tool works on a subject at distance with the
// given size and lighting.
func (t Tool) CanInspect(distance, size float64, hasLight bool) bool {
	return t.Inspectability(distance, size, hasLight) == ReasonNone
}

// EffectiveZoomBonus attenuates ZoomBonus linearly with distance and
// truncates toward zero. Beyond EffectiveRange the bonus is 0.
func (t Tool) EffectiveZoomBonus(distance float64) int {
	if distance > t.EffectiveRange {
		return 0
	}
	return int(float64(t.ZoomBonus) * (1 - distance/(t.EffectiveRange+0.1)))
}

// BestTool picks the usable tool with the highest effective zoom bonus among
// those granting every required affordance. Ties keep the earliest tool.
func BestTool(tools []Tool, distance, size float64, hasLight bool, required ...Affordance) (Tool, bool) {
	var best Tool
	bestBonus := 0
	found := false
	for _, t := range tools {
		if !t.CanInspect(distance, size, hasLight) || !t.HasAffordances(required...) {
			continue
		}
		bonus := t.EffectiveZoomBonus(distance)
		if !found || bonus > bestBonus {
			best = t
			bestBonus = bonus
			found = true
		}
	}
	return best, found
}
