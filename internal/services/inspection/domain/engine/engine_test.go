package engine

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	apperrors "github.com/louisbranch/closerlook/internal/platform/errors"
	"github.com/louisbranch/closerlook/internal/services/inspection/domain/object"
	"github.com/louisbranch/closerlook/internal/services/inspection/domain/progress"
	"github.com/louisbranch/closerlook/internal/services/inspection/domain/zoom"
)

const deskID = "antique_desk"

func newTestEngine(t *testing.T, seed int64) *Engine {
	t.Helper()
	e, err := New(Config{Seed: seed})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e
}

func antiqueDesk() object.Object {
	return object.Object{
		ID:              deskID,
		Name:            "Antique Desk",
		BaseDescription: "A heavy oak desk.",
		Tags:            []string{"furniture"},
		Material:        "oak",
		Era:             "victorian",
		Constraints: zoom.Constraints{
			MinLevel:            zoom.Coarse,
			MaxLevel:            zoom.Fine,
			RequiresToolForFine: true,
			RequiredToolType:    "magnifying_glass",
			MaxUnaidedLevel:     zoom.Close,
		},
		Layers: map[zoom.Level]*object.Layer{
			zoom.Coarse: {Description: "Its surface is cluttered with papers."},
			zoom.Medium: {
				Description:     "A drawer sits slightly ajar.",
				FirstTimeText:   "You notice a drawer sitting slightly ajar.",
				ReturnText:      "The drawer is still ajar.",
				RevealsHotspots: []string{"drawer"},
			},
			zoom.Close: {
				Description:     "Scratches ring the keyhole.",
				RevealsFacts:    []string{"keyhole_scratched"},
				RevealsHotspots: []string{"under_drawer"},
			},
			zoom.Fine: {
				Description:   "Tiny initials are carved beside the lock: E.W.",
				RevealsFacts:  []string{"initials_ew"},
				RequiresLight: true,
			},
		},
	}
}

func letter() object.Object {
	return object.Object{
		ID:              "letter",
		Name:            "Letter",
		BaseDescription: "A folded letter.",
		Tags:            []string{"document", "letter"},
		Material:        "paper",
		Location:        "study",
		Layers: map[zoom.Level]*object.Layer{
			zoom.Medium: {Description: "The handwriting is hurried.", RevealsFacts: []string{"hurried_hand"}},
		},
	}
}

func mustRegister(t *testing.T, e *Engine, objects ...object.Object) {
	t.Helper()
	for _, obj := range objects {
		if err := e.RegisterObject(obj); err != nil {
			t.Fatalf("register %s: %v", obj.ID, err)
		}
	}
}

func TestAntiqueDeskRequiresMagnifyingGlassForFine(t *testing.T) {
	e := newTestEngine(t, 1)
	mustRegister(t, e, antiqueDesk())

	for _, want := range []zoom.Level{zoom.Medium, zoom.Close} {
		res := e.ZoomInOn(deskID)
		if !res.Success || res.ZoomLevel != want {
			t.Fatalf("zoom in = %+v, want success at %v", res, want)
		}
	}

	blocked := e.ZoomInOn(deskID)
	if blocked.Success {
		t.Fatal("expected zoom past close to fail without a tool")
	}
	if blocked.Error != ReasonLevelUnreachable || blocked.ZoomLevel != zoom.Close {
		t.Fatalf("blocked = %+v", blocked)
	}
	if !strings.Contains(blocked.Hint, "magnifying glass") {
		t.Fatalf("hint = %q, want tool name", blocked.Hint)
	}

	if err := e.AddPlayerTool("magnifying_glass"); err != nil {
		t.Fatalf("add tool: %v", err)
	}
	res := e.InspectObject(deskID, zoom.Fine, "magnifying_glass")
	if !res.Success || res.ZoomLevel != zoom.Fine {
		t.Fatalf("fine inspection = %+v", res)
	}
	if !strings.Contains(res.Description, "E.W.") {
		t.Fatalf("description = %q", res.Description)
	}
	if !e.HasFact("initials_ew") || !e.IsFullyInspected(deskID) {
		t.Fatal("expected fine inspection to unlock initials and complete the desk")
	}
}

func TestZoomBoundariesExplainThemselves(t *testing.T) {
	e := newTestEngine(t, 1)
	mustRegister(t, e, antiqueDesk())

	res := e.ZoomOutFrom(deskID)
	if res.Success || res.Error != ReasonAtBoundary || !strings.Contains(res.Description, "farthest perspective") {
		t.Fatalf("zoom out at coarse = %+v", res)
	}

	if err := e.AddPlayerTool("magnifying_glass"); err != nil {
		t.Fatalf("add tool: %v", err)
	}
	if res := e.InspectObject(deskID, zoom.Fine, ""); !res.Success {
		t.Fatalf("inspect fine = %+v", res)
	}
	res = e.ZoomInOn(deskID)
	if res.Success || res.Error != ReasonAtBoundary || !strings.Contains(res.Description, "as closely as possible") {
		t.Fatalf("zoom in at fine = %+v", res)
	}
	if got := len(e.History(deskID)); got != 1 {
		t.Fatalf("history = %d, want 1", got)
	}
}

func TestRevealedAndDiscoveredStayDistinct(t *testing.T) {
	e := newTestEngine(t, 1)
	mustRegister(t, e, antiqueDesk())

	first := e.InspectObject(deskID, zoom.Close, "")
	if !reflect.DeepEqual(first.RevealedFacts, []string{"keyhole_scratched"}) {
		t.Fatalf("revealed = %v", first.RevealedFacts)
	}
	wantNew := []progress.Discovery{
		progress.Fact("keyhole_scratched"),
		progress.Hotspot("drawer"),
		progress.Hotspot("under_drawer"),
	}
	if !reflect.DeepEqual(first.Discovered, wantNew) {
		t.Fatalf("discovered = %v, want %v", first.Discovered, wantNew)
	}
	if !reflect.DeepEqual(first.NewFacts(), []string{"keyhole_scratched"}) {
		t.Fatalf("new facts = %v", first.NewFacts())
	}

	second := e.InspectObject(deskID, zoom.Close, "")
	if len(second.Discovered) != 0 {
		t.Fatalf("second discovered = %v, want none", second.Discovered)
	}
	if !reflect.DeepEqual(second.RevealedFacts, []string{"keyhole_scratched"}) {
		t.Fatalf("second revealed = %v", second.RevealedFacts)
	}
}

func TestFirstVisitAndReturnText(t *testing.T) {
	e := newTestEngine(t, 1)
	mustRegister(t, e, antiqueDesk())

	first := e.InspectObject(deskID, zoom.Medium, "")
	if !strings.Contains(first.Description, "You notice a drawer") {
		t.Fatalf("first = %q", first.Description)
	}
	if strings.Contains(first.Description, "A heavy oak desk.") {
		t.Fatal("base description should only show at coarse")
	}
	again := e.InspectObject(deskID, zoom.Medium, "")
	if !strings.Contains(again.Description, "The drawer is still ajar.") {
		t.Fatalf("return = %q", again.Description)
	}
}

func TestProcessCommandFlow(t *testing.T) {
	e := newTestEngine(t, 1)
	mustRegister(t, e, antiqueDesk(), letter())

	res := e.ProcessCommand("examine the desk")
	if !res.Success || res.Target != deskID || res.ZoomLevel != zoom.Coarse {
		t.Fatalf("examine = %+v", res)
	}
	if !strings.Contains(res.Description, "A heavy oak desk.") {
		t.Fatalf("examine description = %q", res.Description)
	}

	if res := e.ProcessCommand("look closer"); !res.Success || res.ZoomLevel != zoom.Medium || res.Target != deskID {
		t.Fatalf("look closer = %+v", res)
	}
	if res := e.ProcessCommand("zoom out"); !res.Success || res.ZoomLevel != zoom.Coarse {
		t.Fatalf("zoom out = %+v", res)
	}

	res = e.ProcessCommand("use magnifying glass on the desk")
	if res.Success || res.Error != ReasonToolNotOwned {
		t.Fatalf("use unowned tool = %+v", res)
	}

	if err := e.AddPlayerTool("magnifying_glass"); err != nil {
		t.Fatalf("add tool: %v", err)
	}
	res = e.ProcessCommand("use magnifier on the desk")
	if !res.Success || res.ZoomLevel != zoom.Close {
		t.Fatalf("use magnifier = %+v, want close", res)
	}
	if !strings.HasPrefix(res.Description, "You turn the magnifying glass on the Antique Desk.") {
		t.Fatalf("use description = %q", res.Description)
	}
	if res := e.ProcessCommand("use magnifier"); !res.Success || res.ZoomLevel != zoom.Fine {
		t.Fatalf("second use = %+v, want fine", res)
	}

	if res := e.ProcessCommand("reset"); !res.Success || res.ZoomLevel != zoom.Coarse || !strings.HasPrefix(res.Description, "You step back") {
		t.Fatalf("reset = %+v", res)
	}
	if res := e.ProcessCommandOn("look closer", "letter"); !res.Success || res.Target != "letter" || res.ZoomLevel != zoom.Medium {
		t.Fatalf("override = %+v", res)
	}
	if !e.HasFact("hurried_hand") {
		t.Fatal("expected letter fact")
	}
}

func TestLookAroundFiltersByLocation(t *testing.T) {
	e := newTestEngine(t, 1)
	mustRegister(t, e, antiqueDesk(), letter())

	res := e.ProcessCommand("look around")
	if !strings.Contains(res.Description, "Antique Desk") || !strings.Contains(res.Description, "Letter") {
		t.Fatalf("look around = %q", res.Description)
	}
	e.SetLocation("hall")
	res = e.ProcessCommand("")
	if !strings.Contains(res.Description, "Antique Desk") || strings.Contains(res.Description, "Letter") {
		t.Fatalf("look around in hall = %q", res.Description)
	}
}

func TestDirectionalAndFocus(t *testing.T) {
	e := newTestEngine(t, 1)
	mustRegister(t, e, antiqueDesk())

	res := e.ProcessCommand("look under the desk")
	if !res.Success || !reflect.DeepEqual(res.RevealedHotspots, []string{"under_drawer"}) {
		t.Fatalf("look under = %+v", res)
	}
	if !reflect.DeepEqual(res.Discovered, []progress.Discovery{progress.Hotspot("under_drawer")}) {
		t.Fatalf("discovered = %v", res.Discovered)
	}
	if res := e.ProcessCommand("look behind the desk"); res.Success || res.Error != ReasonNothingFound {
		t.Fatalf("look behind = %+v", res)
	}

	res = e.ProcessCommand("focus on the keyhole")
	if !res.Success || res.ZoomLevel != zoom.Close {
		t.Fatalf("focus keyhole = %+v", res)
	}
	res = e.ProcessCommand("focus on the hinge")
	if !res.Success || !strings.HasPrefix(res.Description, "The hinge bears a") {
		t.Fatalf("focus hinge = %+v", res)
	}
}

func TestFocusMatchesShownLayerText(t *testing.T) {
	e := newTestEngine(t, 1)
	note := letter()
	note.Layers[zoom.Medium].FirstTimeText = "Held to the light, a faint watermark shows through."
	mustRegister(t, e, note)

	res := e.ProcessCommand("focus on the watermark of the letter")
	if !res.Success || res.ZoomLevel != zoom.Medium {
		t.Fatalf("focus watermark = %+v, want medium layer", res)
	}
	if !strings.Contains(res.Description, "watermark") {
		t.Fatalf("description = %q, want first-time text", res.Description)
	}
}

func TestTargetFailures(t *testing.T) {
	e := newTestEngine(t, 1)
	mustRegister(t, e, antiqueDesk())

	if res := e.ProcessCommand("look closer"); res.Success || res.Error != ReasonNoTarget {
		t.Fatalf("no target = %+v", res)
	}
	res := e.ProcessCommand("examine the unicorn")
	if res.Success || res.Error != ReasonTargetNotFound || !strings.Contains(res.Description, "unicorn") {
		t.Fatalf("unknown target = %+v", res)
	}
	if res := e.ProcessCommand("use sonic screwdriver on desk"); res.Error != ReasonToolUnknown {
		t.Fatalf("unknown tool = %+v", res)
	}
}

func TestDarknessBlocksLightTools(t *testing.T) {
	e := newTestEngine(t, 1)
	mustRegister(t, e, antiqueDesk())
	if err := e.AddPlayerTool("magnifying_glass"); err != nil {
		t.Fatalf("add tool: %v", err)
	}
	e.SetLight(false)

	res := e.InspectObject(deskID, zoom.Fine, "magnifying_glass")
	if res.Success || res.Error != ReasonToolUnusable || res.Hint != "Some light would help." {
		t.Fatalf("dark inspection = %+v", res)
	}

	if err := e.AddPlayerTool("flashlight"); err != nil {
		t.Fatalf("add flashlight: %v", err)
	}
	if res := e.InspectObject(deskID, zoom.Fine, "magnifying_glass"); !res.Success {
		t.Fatalf("lit inspection = %+v", res)
	}
}

func TestDarkLayersHintAtLight(t *testing.T) {
	e := newTestEngine(t, 1)
	crate := object.Object{
		ID:         "crate",
		Name:       "Crate",
		InDarkness: true,
		Layers: map[zoom.Level]*object.Layer{
			zoom.Medium: {Description: "Stenciled letters read PROPERTY OF E.W.", RequiresLight: true},
		},
	}
	mustRegister(t, e, crate)

	res := e.InspectObject("crate", zoom.Medium, "")
	if !res.Success || strings.Contains(res.Description, "Stenciled") {
		t.Fatalf("dark crate = %+v", res)
	}
	if res.Hint != "Some light would help." {
		t.Fatalf("hint = %q", res.Hint)
	}
}

func TestRegisterObjectValidation(t *testing.T) {
	e := newTestEngine(t, 1)
	mustRegister(t, e, antiqueDesk())

	if err := e.RegisterObject(antiqueDesk()); !errors.Is(err, apperrors.New(apperrors.CodeObjectDuplicate, "")) {
		t.Fatalf("duplicate err = %v", err)
	}

	bad := letter()
	bad.Constraints = zoom.Constraints{RequiresToolForFine: true, RequiredToolType: "x_ray_goggles"}
	if err := e.RegisterObject(bad); apperrors.CodeOf(err) != apperrors.CodeToolUnknown {
		t.Fatalf("unknown tool err = %v", err)
	}
	if err := e.AddPlayerTool("laser"); apperrors.CodeOf(err) != apperrors.CodeToolUnknown {
		t.Fatalf("add unknown tool err = %v", err)
	}
}

func TestRegisterObjectKeepsPrivateCopy(t *testing.T) {
	e := newTestEngine(t, 1)
	desk := antiqueDesk()
	mustRegister(t, e, desk)
	desk.Layers[zoom.Medium].Description = "changed"

	got, _ := e.Object(deskID)
	if got.Layers[zoom.Medium].Description != "A drawer sits slightly ajar." {
		t.Fatalf("registered layer changed to %q", got.Layers[zoom.Medium].Description)
	}
}
