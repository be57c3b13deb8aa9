package progress

import (
	"encoding/json"
	"sort"

	"github.com/louisbranch/closerlook/internal/services/inspection/domain/zoom"
)

// Set is a string set serialized as a sorted list.
type Set map[string]struct{}

// NewSet builds a set from values.
func NewSet(values ...string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Has reports membership.
func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// add inserts v and reports whether it was absent.
func (s Set) add(v string) bool {
	if _, ok := s[v]; ok {
		return false
	}
	s[v] = struct{}{}
	return true
}

// Sorted returns the members in ascending order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func (s Set) clone() Set {
	out := make(Set, len(s))
	for v := range s {
		out[v] = struct{}{}
	}
	return out
}

// MarshalJSON encodes the set as a sorted array.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes an array into the set.
func (s *Set) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*s = NewSet(values...)
	return nil
}

// State is the inspection progress for one object.
type State struct {
	ObjectID           string     `json:"object_id"`
	CurrentLevel       zoom.Level `json:"current_level"`
	MaxLevelReached    zoom.Level `json:"max_level_reached"`
	DiscoveredFacts    Set        `json:"discovered_facts"`
	DiscoveredItems    Set        `json:"discovered_items"`
	DiscoveredHotspots Set        `json:"discovered_hotspots"`
	ToolsUsed          Set        `json:"tools_used"`
	InspectionCount    int        `json:"inspection_count"`
	FirstInspected     *float64   `json:"first_inspected"`
	LastInspected      *float64   `json:"last_inspected"`
}

func newState(objectID string) *State {
	return &State{
		ObjectID:           objectID,
		CurrentLevel:       zoom.Coarse,
		MaxLevelReached:    zoom.Coarse,
		DiscoveredFacts:    Set{},
		DiscoveredItems:    Set{},
		DiscoveredHotspots: Set{},
		ToolsUsed:          Set{},
	}
}

// Inspected reports whether the object was ever inspected.
func (s State) Inspected() bool {
	return s.InspectionCount > 0
}

func (s *State) clone() State {
	out := *s
	out.DiscoveredFacts = s.DiscoveredFacts.clone()
	out.DiscoveredItems = s.DiscoveredItems.clone()
	out.DiscoveredHotspots = s.DiscoveredHotspots.clone()
	out.ToolsUsed = s.ToolsUsed.clone()
	if s.FirstInspected != nil {
		v := *s.FirstInspected
		out.FirstInspected = &v
	}
	if s.LastInspected != nil {
		v := *s.LastInspected
		out.LastInspected = &v
	}
	return out
}

// ensureSets replaces nil sets left by decoding partial saves.
func (s *State) ensureSets() {
	if s.DiscoveredFacts == nil {
		s.DiscoveredFacts = Set{}
	}
	if s.DiscoveredItems == nil {
		s.DiscoveredItems = Set{}
	}
	if s.DiscoveredHotspots == nil {
		s.DiscoveredHotspots = Set{}
	}
	if s.ToolsUsed == nil {
		s.ToolsUsed = Set{}
	}
}

// Entry is one immutable zoom transition.
type Entry struct {
	Timestamp      float64     `json:"timestamp"`
	ObjectID       string      `json:"object_id"`
	From           zoom.Level  `json:"from_level"`
	To             zoom.Level  `json:"to_level"`
	Tool           string      `json:"tool_used,omitempty"`
	NewDiscoveries []Discovery `json:"new_discoveries"`
}

func (e Entry) clone() Entry {
	e.NewDiscoveries = append([]Discovery(nil), e.NewDiscoveries...)
	return e
}
