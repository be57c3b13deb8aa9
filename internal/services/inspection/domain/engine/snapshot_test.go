package engine

import (
	"errors"
	"reflect"
	"testing"

	apperrors "github.com/louisbranch/closerlook/internal/platform/errors"
	"github.com/louisbranch/closerlook/internal/services/inspection/domain/object"
	"github.com/louisbranch/closerlook/internal/services/inspection/domain/zoom"
)

func proceduralDesk() object.Object {
	desk := antiqueDesk()
	desk.ProceduralDetails = true
	return desk
}

var sessionScript = []string{
	"examine the desk",
	"look closer",
	"look closer",
	"focus on the hinge",
	"look under the desk",
	"use magnifier on the desk",
	"zoom out",
	"look closer at the letter",
}

func runScript(t *testing.T, e *Engine, script []string) []Result {
	t.Helper()
	var results []Result
	for _, line := range script {
		results = append(results, e.ProcessCommand(line))
	}
	return results
}

func newSession(t *testing.T, seed int64) *Engine {
	t.Helper()
	e := newTestEngine(t, seed)
	mustRegister(t, e, proceduralDesk(), letter())
	if err := e.AddPlayerTool("magnifying_glass"); err != nil {
		t.Fatalf("add tool: %v", err)
	}
	return e
}

func TestIdenticalSessionsAreReproducible(t *testing.T) {
	first := newSession(t, 1234)
	second := newSession(t, 1234)

	a := runScript(t, first, sessionScript)
	b := runScript(t, second, sessionScript)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("sessions diverged:\n%+v\n%+v", a, b)
	}
	if !reflect.DeepEqual(first.PlayerFacts(), second.PlayerFacts()) {
		t.Fatalf("facts diverged: %v vs %v", first.PlayerFacts(), second.PlayerFacts())
	}
}

func TestProceduralDetailsAppearFromMedium(t *testing.T) {
	e := newSession(t, 99)
	coarse := e.InspectObject(deskID, zoom.Coarse, "")
	medium := e.InspectObject(deskID, zoom.Medium, "")
	if coarse.Description != "A heavy oak desk.\n\nIts surface is cluttered with papers." {
		t.Fatalf("coarse = %q", coarse.Description)
	}
	if len(medium.Description) <= len("Its surface is cluttered with papers.\n\nYou notice a drawer sitting slightly ajar.") {
		t.Fatalf("medium = %q, want generated detail appended", medium.Description)
	}
	again := e.InspectObject(deskID, zoom.Medium, "")
	if got, want := tail(again.Description), tail(medium.Description); got != want {
		t.Fatalf("cached detail changed: %q vs %q", got, want)
	}
}

func tail(description string) string {
	for i := len(description) - 1; i > 0; i-- {
		if description[i] == '\n' {
			return description[i+1:]
		}
	}
	return description
}

func TestSnapshotRoundTrip(t *testing.T) {
	e := newSession(t, 77)
	e.SetLocation("study")
	e.SetTime(120)
	runScript(t, e, sessionScript)

	data, err := MarshalSnapshot(e.Snapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	snap, err := UnmarshalSnapshot(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	restored := newTestEngine(t, 0)
	if err := restored.Restore(snap); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !reflect.DeepEqual(restored.Snapshot(), e.Snapshot()) {
		t.Fatalf("restored snapshot differs:\n%+v\n%+v", restored.Snapshot(), e.Snapshot())
	}
	if restored.Seed() != 77 || restored.Location() != "study" {
		t.Fatalf("seed/location = %d/%q", restored.Seed(), restored.Location())
	}

	next := "look closer at the desk"
	if a, b := e.ProcessCommand(next), restored.ProcessCommand(next); !reflect.DeepEqual(a, b) {
		t.Fatalf("continuation diverged:\n%+v\n%+v", a, b)
	}
}

func TestSnapshotKeepsLayersThroughJSON(t *testing.T) {
	e := newTestEngine(t, 5)
	mustRegister(t, e, letter())

	data, err := MarshalSnapshot(e.Snapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	snap, err := UnmarshalSnapshot(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	layer := snap.Objects["letter"].Layers[zoom.Medium]
	if layer == nil || layer.Description != "The handwriting is hurried." {
		t.Fatalf("medium layer = %+v, want hurried handwriting", layer)
	}

	restored := newTestEngine(t, 0)
	if err := restored.Restore(snap); err != nil {
		t.Fatalf("restore: %v", err)
	}
	obj, ok := restored.Object("letter")
	if !ok || obj.Layers[zoom.Medium] == nil {
		t.Fatalf("restored letter = %+v, want medium layer", obj)
	}
}

func TestUnmarshalSnapshotRejectsUnknownEnums(t *testing.T) {
	tests := []struct {
		name string
		data string
		code apperrors.Code
	}{
		{
			name: "zoom level",
			data: `{"zoom_manager":{"states":{"desk":{"current_level":9,"max_level_reached":4}}}}`,
			code: apperrors.CodeZoomLevelInvalid,
		},
		{
			name: "affordance",
			data: `{"player_tools":[{"type":"magnifying_glass","name":"glass","affordances":["telepathy"]}]}`,
			code: apperrors.CodeAffordanceInvalid,
		},
		{
			name: "discovery",
			data: `{"zoom_manager":{"history":[{"from_level":1,"to_level":2,"new_discoveries":["rumor:x"]}]}}`,
			code: apperrors.CodeDiscoveryInvalid,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := UnmarshalSnapshot([]byte(tc.data))
			if !errors.Is(err, apperrors.New(apperrors.CodeSnapshotInvalid, "")) {
				t.Fatalf("err = %v, want snapshot invalid", err)
			}
			if !errors.Is(err, apperrors.New(tc.code, "")) {
				t.Fatalf("err = %v, want %s in chain", err, tc.code)
			}
		})
	}
}

func TestRestoreRejectsUnknownToolsWithoutChanges(t *testing.T) {
	e := newSession(t, 5)
	runScript(t, e, sessionScript[:2])
	before := e.Snapshot()

	bad := e.Snapshot()
	bad.PlayerTools[0].Type = "x_ray_goggles"
	bad.HasLight = false
	err := e.Restore(bad)
	if !errors.Is(err, apperrors.New(apperrors.CodeToolUnknown, "")) {
		t.Fatalf("err = %v, want unknown tool", err)
	}
	if !reflect.DeepEqual(e.Snapshot(), before) {
		t.Fatal("failed restore modified the engine")
	}
}

func TestSetSeedDropsCachedDetails(t *testing.T) {
	e := newSession(t, 3)
	e.InspectObject(deskID, zoom.Medium, "")
	if len(e.Snapshot().DetailGenerator.GeneratedCache) == 0 {
		t.Fatal("expected cached details")
	}
	e.SetSeed(4)
	if got := e.Snapshot().DetailGenerator.GeneratedCache; len(got) != 0 {
		t.Fatalf("cache = %v, want empty after reseed", got)
	}
}
