package engine

import (
	"encoding/json"
	"fmt"
	"sort"

	"go.uber.org/zap"

	apperrors "github.com/louisbranch/closerlook/internal/platform/errors"
	"github.com/louisbranch/closerlook/internal/services/inspection/domain/detail"
	"github.com/louisbranch/closerlook/internal/services/inspection/domain/object"
	"github.com/louisbranch/closerlook/internal/services/inspection/domain/progress"
	"github.com/louisbranch/closerlook/internal/services/inspection/domain/tool"
)

// Snapshot is the save-file shape of an engine. Field names and enum
// encodings are part of the save format.
type Snapshot struct {
	Objects         map[string]object.Object `json:"objects"`
	ZoomManager     progress.Snapshot        `json:"zoom_manager"`
	DetailGenerator detail.Snapshot          `json:"detail_generator"`
	PlayerTools     []tool.Tool              `json:"player_tools"`
	PlayerFacts     []string                 `json:"player_facts"`
	CurrentLocation string                   `json:"current_location"`
	HasLight        bool                     `json:"has_light"`
}

// Snapshot captures the engine state. Catalogs and custom templates are
// configuration and are not included.
func (e *Engine) Snapshot() Snapshot {
	objects := make(map[string]object.Object, len(e.objects))
	for id, obj := range e.objects {
		objects[id] = *cloneObject(*obj)
	}
	return Snapshot{
		Objects:         objects,
		ZoomManager:     e.manager.Snapshot(),
		DetailGenerator: e.generator.Snapshot(),
		PlayerTools:     e.PlayerTools(),
		PlayerFacts:     e.PlayerFacts(),
		CurrentLocation: e.location,
		HasLight:        e.hasLight,
	}
}

// Restore replaces the engine state with snap. Nothing changes unless the
// whole snapshot is valid.
func (e *Engine) Restore(snap Snapshot) error {
	objects := make(map[string]*object.Object, len(snap.Objects))
	for id, obj := range snap.Objects {
		restored := cloneObject(obj)
		if restored.ID == "" {
			restored.ID = id
		}
		if restored.ID != id {
			return e.restoreFailed(fmt.Sprintf("object key %q holds object %q", id, restored.ID), nil)
		}
		restored.Normalize()
		if err := restored.Validate(e.tools); err != nil {
			return e.restoreFailed(fmt.Sprintf("object %q", id), err)
		}
		objects[id] = restored
	}

	tools := make([]tool.Tool, 0, len(snap.PlayerTools))
	for _, t := range snap.PlayerTools {
		if !e.tools.Has(t.Type) {
			return e.restoreFailed(fmt.Sprintf("player tool %q", t.Type),
				apperrors.New(apperrors.CodeToolUnknown, fmt.Sprintf("unknown tool type %q", t.Type)))
		}
		tools = append(tools, t)
	}

	manager := progress.NewManager()
	if err := manager.Restore(snap.ZoomManager); err != nil {
		return e.restoreFailed("zoom manager", err)
	}
	if err := e.generator.Restore(snap.DetailGenerator); err != nil {
		return e.restoreFailed("detail generator", err)
	}

	facts := make(map[string]bool, len(snap.PlayerFacts))
	for _, id := range snap.PlayerFacts {
		facts[id] = true
	}

	e.objects = objects
	e.order = sortedKeys(objects)
	e.playerTools = tools
	e.facts = facts
	e.manager = manager
	e.location = snap.CurrentLocation
	e.hasLight = snap.HasLight
	e.current = ""
	e.log.Debug("engine restored",
		zap.Int("objects", len(objects)),
		zap.Int("tools", len(tools)),
		zap.Int64("seed", snap.DetailGenerator.Seed))
	return nil
}

func (e *Engine) restoreFailed(what string, cause error) error {
	e.log.Warn("snapshot rejected", zap.String("part", what), zap.Error(cause))
	if cause == nil {
		return apperrors.New(apperrors.CodeSnapshotInvalid, what)
	}
	return apperrors.Wrap(apperrors.CodeSnapshotInvalid, what, cause)
}

// MarshalSnapshot encodes a snapshot as indented JSON.
func MarshalSnapshot(snap Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeSnapshotInvalid, "encode snapshot", err)
	}
	return data, nil
}

// UnmarshalSnapshot decodes a snapshot, rejecting unknown enum values.
func UnmarshalSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, apperrors.Wrap(apperrors.CodeSnapshotInvalid, "decode snapshot", err)
	}
	return snap, nil
}

func sortedKeys(objects map[string]*object.Object) []string {
	keys := make([]string, 0, len(objects))
	for id := range objects {
		keys = append(keys, id)
	}
	sort.Strings(keys)
	return keys
}
