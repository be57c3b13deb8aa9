package progress

import (
	"fmt"
	"sort"

	apperrors "github.com/louisbranch/closerlook/internal/platform/errors"
	"github.com/louisbranch/closerlook/internal/services/inspection/domain/zoom"
)

// Manager owns one State per object id and the shared zoom history.
//
// The game clock is push-only: timestamps come from SetTime and AdvanceTime,
// never from the wall clock, so replays stay reproducible.
type Manager struct {
	states  map[string]*State
	history []Entry
	now     float64
}

// NewManager returns an empty manager at game time zero.
func NewManager() *Manager {
	return &Manager{states: make(map[string]*State)}
}

// Now returns the current game time in seconds.
func (m *Manager) Now() float64 { return m.now }

// SetTime moves the game clock to t.
func (m *Manager) SetTime(t float64) { m.now = t }

// AdvanceTime moves the game clock forward by dt seconds.
func (m *Manager) AdvanceTime(dt float64) {
	if dt > 0 {
		m.now += dt
	}
}

// State returns a copy of the object's state, creating it on first access.
func (m *Manager) State(objectID string) State {
	return m.state(objectID).clone()
}

// Lookup returns a copy of the object's state without creating one.
func (m *Manager) Lookup(objectID string) (State, bool) {
	s, ok := m.states[objectID]
	if !ok {
		return State{}, false
	}
	return s.clone(), true
}

func (m *Manager) state(objectID string) *State {
	s, ok := m.states[objectID]
	if !ok {
		s = newState(objectID)
		m.states[objectID] = s
	}
	return s
}

// RecordZoom moves the object to level, records one history entry and merges
// the offered discoveries. It returns only the discoveries that were new.
func (m *Manager) RecordZoom(objectID string, level zoom.Level, toolType string, found Discoveries) []Discovery {
	s := m.state(objectID)
	from := s.CurrentLevel

	s.CurrentLevel = level
	if level > s.MaxLevelReached {
		s.MaxLevelReached = level
	}
	s.InspectionCount++
	now := m.now
	if s.FirstInspected == nil {
		first := now
		s.FirstInspected = &first
	}
	s.LastInspected = &now
	if toolType != "" {
		s.ToolsUsed.add(toolType)
	}

	fresh := []Discovery{}
	for _, id := range found.Facts {
		if s.DiscoveredFacts.add(id) {
			fresh = append(fresh, Fact(id))
		}
	}
	for _, id := range found.Items {
		if s.DiscoveredItems.add(id) {
			fresh = append(fresh, Item(id))
		}
	}
	for _, id := range found.Hotspots {
		if s.DiscoveredHotspots.add(id) {
			fresh = append(fresh, Hotspot(id))
		}
	}

	m.history = append(m.history, Entry{
		Timestamp:      now,
		ObjectID:       objectID,
		From:           from,
		To:             level,
		Tool:           toolType,
		NewDiscoveries: append([]Discovery(nil), fresh...),
	})
	return fresh
}

// ZoomIn moves one level deeper. At Fine it writes nothing and reports
// ok == false.
func (m *Manager) ZoomIn(objectID, toolType string, found Discoveries) (zoom.Level, []Discovery, bool) {
	current := m.state(objectID).CurrentLevel
	next := current.ZoomIn()
	if next == current {
		return current, nil, false
	}
	return next, m.RecordZoom(objectID, next, toolType, found), true
}

// ZoomOut moves one level back. At Coarse it writes nothing and reports
// ok == false.
func (m *Manager) ZoomOut(objectID string, found Discoveries) (zoom.Level, []Discovery, bool) {
	current := m.state(objectID).CurrentLevel
	next := current.ZoomOut()
	if next == current {
		return current, nil, false
	}
	return next, m.RecordZoom(objectID, next, "", found), true
}

// CurrentLevel returns the object's current level, Coarse when untracked.
func (m *Manager) CurrentLevel(objectID string) zoom.Level {
	if s, ok := m.states[objectID]; ok {
		return s.CurrentLevel
	}
	return zoom.Coarse
}

// IsFirstTimeAt reports whether the object has never been viewed at level.
func (m *Manager) IsFirstTimeAt(objectID string, level zoom.Level) bool {
	for _, e := range m.history {
		if e.ObjectID == objectID && e.To == level {
			return false
		}
	}
	return true
}

// IsFullyInspected reports whether the object ever reached Fine.
func (m *Manager) IsFullyInspected(objectID string) bool {
	s, ok := m.states[objectID]
	return ok && s.MaxLevelReached == zoom.Fine
}

// RecentlyInspected lists objects inspected within the last window seconds,
// most recent first. Ties sort by id.
func (m *Manager) RecentlyInspected(window float64) []string {
	type recent struct {
		id   string
		last float64
	}
	var found []recent
	for id, s := range m.states {
		if s.LastInspected == nil {
			continue
		}
		if m.now-*s.LastInspected <= window {
			found = append(found, recent{id: id, last: *s.LastInspected})
		}
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].last != found[j].last {
			return found[i].last > found[j].last
		}
		return found[i].id < found[j].id
	})
	ids := make([]string, len(found))
	for i, r := range found {
		ids[i] = r.id
	}
	return ids
}

// HistoryFor returns the object's entries in the order they were recorded.
func (m *Manager) HistoryFor(objectID string) []Entry {
	var out []Entry
	for _, e := range m.history {
		if e.ObjectID == objectID {
			out = append(out, e.clone())
		}
	}
	return out
}

// History returns a copy of every recorded entry.
func (m *Manager) History() []Entry {
	out := make([]Entry, len(m.history))
	for i, e := range m.history {
		out[i] = e.clone()
	}
	return out
}

// Statistics summarizes progress across all tracked objects.
type Statistics struct {
	ObjectsTracked     int `json:"objects_tracked"`
	ObjectsInspected   int `json:"objects_inspected"`
	FullyInspected     int `json:"fully_inspected"`
	TotalInspections   int `json:"total_inspections"`
	FactsDiscovered    int `json:"facts_discovered"`
	ItemsDiscovered    int `json:"items_discovered"`
	HotspotsDiscovered int `json:"hotspots_discovered"`
	HistoryEntries     int `json:"history_entries"`
}

// Statistics computes aggregate counts without touching state.
func (m *Manager) Statistics() Statistics {
	stats := Statistics{ObjectsTracked: len(m.states), HistoryEntries: len(m.history)}
	for _, s := range m.states {
		if s.Inspected() {
			stats.ObjectsInspected++
		}
		if s.MaxLevelReached == zoom.Fine {
			stats.FullyInspected++
		}
		stats.TotalInspections += s.InspectionCount
		stats.FactsDiscovered += len(s.DiscoveredFacts)
		stats.ItemsDiscovered += len(s.DiscoveredItems)
		stats.HotspotsDiscovered += len(s.DiscoveredHotspots)
	}
	return stats
}

// Snapshot is the serialized manager state.
type Snapshot struct {
	States      map[string]State `json:"states"`
	History     []Entry          `json:"history"`
	CurrentTime float64          `json:"current_time"`
}

// Snapshot deep-copies the manager.
func (m *Manager) Snapshot() Snapshot {
	states := make(map[string]State, len(m.states))
	for id, s := range m.states {
		states[id] = s.clone()
	}
	history := make([]Entry, len(m.history))
	for i, e := range m.history {
		history[i] = e.clone()
	}
	return Snapshot{States: states, History: history, CurrentTime: m.now}
}

// Restore replaces the manager's contents. Invalid levels fail without
// modifying the manager.
func (m *Manager) Restore(snap Snapshot) error {
	states := make(map[string]*State, len(snap.States))
	for id, s := range snap.States {
		if !s.CurrentLevel.Valid() || !s.MaxLevelReached.Valid() {
			return snapshotInvalid(fmt.Sprintf("state %q has an invalid zoom level", id))
		}
		if s.CurrentLevel > s.MaxLevelReached {
			return snapshotInvalid(fmt.Sprintf("state %q is deeper than its max level", id))
		}
		restored := s.clone()
		restored.ObjectID = id
		restored.ensureSets()
		states[id] = &restored
	}
	for i, e := range snap.History {
		if !e.From.Valid() || !e.To.Valid() {
			return snapshotInvalid(fmt.Sprintf("history entry %d has an invalid zoom level", i))
		}
	}
	m.states = states
	m.history = append([]Entry(nil), snap.History...)
	m.now = snap.CurrentTime
	return nil
}

func snapshotInvalid(message string) error {
	return apperrors.New(apperrors.CodeSnapshotInvalid, message)
}
