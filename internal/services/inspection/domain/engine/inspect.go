package engine

import (
	"strings"

	"go.uber.org/zap"

	"github.com/louisbranch/closerlook/internal/services/inspection/core/naming"
	"github.com/louisbranch/closerlook/internal/services/inspection/domain/object"
	"github.com/louisbranch/closerlook/internal/services/inspection/domain/progress"
	"github.com/louisbranch/closerlook/internal/services/inspection/domain/tool"
	"github.com/louisbranch/closerlook/internal/services/inspection/domain/zoom"
)

// InspectObject views id at level with an optional tool. An Unspecified
// level means the object's current level.
func (e *Engine) InspectObject(id string, level zoom.Level, toolType tool.Type) Result {
	obj, ok := e.objects[id]
	if !ok {
		return e.fail(ReasonTargetNotFound, msgTargetNotFound, "", naming.Humanize(id))
	}
	if level == zoom.Unspecified {
		level = e.manager.CurrentLevel(id)
	}

	if toolType != "" {
		held, ok := e.playerTool(toolType)
		if !ok {
			return e.toolNotHeld(toolType)
		}
		if res, usable := e.checkTool(obj, held); !usable {
			return res
		}
	}

	if !obj.CanZoomTo(level, e.playerTools) {
		return e.unreachable(obj)
	}

	active := e.activeTool(obj, level, toolType)
	view := e.view(obj, active)
	firstTime := e.manager.IsFirstTimeAt(id, level)

	description := obj.DescriptionAt(level, view, firstTime)
	reveals := obj.Reveals(level, view)
	facts := append([]string(nil), reveals.Facts...)
	if obj.ProceduralDetails && level >= zoom.Medium {
		subject := e.subject(obj, level)
		details := e.generator.GenerateDetails(subject, int(level)-1, nil)
		if len(details) > 0 {
			description = joinParagraphs(description, strings.Join(details, ". ")+".")
		}
		facts = appendUnique(facts, e.generator.GenerateFactsFromDetails(subject)...)
	}

	discovered := e.manager.RecordZoom(id, level, string(active), progress.Discoveries{
		Facts:    facts,
		Items:    reveals.Items,
		Hotspots: reveals.Hotspots,
	})
	for _, d := range discovered {
		if d.Kind == progress.KindFact {
			e.facts[d.ID] = true
		}
	}
	e.current = id

	e.log.Debug("object inspected",
		zap.String("object_id", id),
		zap.Stringer("level", level),
		zap.String("tool", string(active)),
		zap.Bool("first_time", firstTime),
		zap.Int("discovered", len(discovered)))

	res := Result{
		Success:          true,
		Target:           id,
		Description:      description,
		ZoomLevel:        level,
		ASCIIArt:         obj.ASCIIArtAt(level, view),
		RevealedFacts:    facts,
		RevealedItems:    reveals.Items,
		RevealedHotspots: reveals.Hotspots,
		Discovered:       discovered,
	}
	if e.hiddenByDarkness(obj, level, view) {
		res.Hint = e.printer.Sprintf(msgHintLight)
	}
	return res
}

// ZoomInOn moves one level deeper on id.
func (e *Engine) ZoomInOn(id string) Result {
	obj, ok := e.objects[id]
	if !ok {
		return e.fail(ReasonTargetNotFound, msgTargetNotFound, "", naming.Humanize(id))
	}
	current := e.manager.CurrentLevel(id)
	if current == zoom.Fine || current >= obj.Constraints.MaxLevel {
		res := e.fail(ReasonAtBoundary, msgZoomAtFinest, "", obj.Name)
		res.Target = id
		res.ZoomLevel = current
		return res
	}
	next := current.ZoomIn()
	if !obj.CanZoomTo(next, e.playerTools) {
		return e.unreachable(obj)
	}
	e.log.Debug("zoom in", zap.String("object_id", id), zap.Stringer("from", current), zap.Stringer("to", next))
	return e.InspectObject(id, next, "")
}

// ZoomOutFrom moves one level back on id.
func (e *Engine) ZoomOutFrom(id string) Result {
	obj, ok := e.objects[id]
	if !ok {
		return e.fail(ReasonTargetNotFound, msgTargetNotFound, "", naming.Humanize(id))
	}
	current := e.manager.CurrentLevel(id)
	if current == zoom.Coarse || current <= obj.Constraints.MinLevel {
		res := e.fail(ReasonAtBoundary, msgZoomAtFarthest, "", obj.Name)
		res.Target = id
		res.ZoomLevel = current
		return res
	}
	next := current.ZoomOut()
	e.log.Debug("zoom out", zap.String("object_id", id), zap.Stringer("from", current), zap.Stringer("to", next))
	return e.InspectObject(id, next, "")
}

// activeTool picks the tool in use for a view: the requested one, else a
// held tool that a layer at level or the Fine gate asks for.
func (e *Engine) activeTool(obj *object.Object, level zoom.Level, requested tool.Type) tool.Type {
	if requested != "" {
		return requested
	}
	if layer, ok := obj.Layer(level); ok && layer.RequiresTool != "" && e.HasTool(tool.Type(layer.RequiresTool)) {
		return tool.Type(layer.RequiresTool)
	}
	if level == zoom.Fine && obj.Constraints.RequiresToolForFine {
		if required := obj.Constraints.RequiredToolType; required != "" {
			if e.HasTool(tool.Type(required)) {
				return tool.Type(required)
			}
			return ""
		}
		if best, ok := tool.BestTool(e.playerTools, obj.Distance, obj.Size, e.lit(obj)); ok {
			return best.Type
		}
	}
	return ""
}

// checkTool turns an unusable tool into a failed result with a hint.
func (e *Engine) checkTool(obj *object.Object, t tool.Tool) (Result, bool) {
	var res Result
	switch t.Inspectability(obj.Distance, obj.Size, e.lit(obj)) {
	case tool.ReasonNone:
		return Result{}, true
	case tool.ReasonNeedsLight:
		res = e.fail(ReasonToolUnusable, msgToolNeedsLight, msgHintLight, t.Name)
	case tool.ReasonOutOfRange:
		res = e.fail(ReasonToolUnusable, msgToolOutOfRange, msgHintCloser, obj.Name, t.Name)
	case tool.ReasonTooSmall:
		res = e.fail(ReasonToolUnusable, msgToolTooSmall, msgHintLarger, obj.Name, t.Name)
	}
	res.Target = obj.ID
	res.ZoomLevel = e.manager.CurrentLevel(obj.ID)
	return res, false
}

func (e *Engine) toolNotHeld(t tool.Type) Result {
	if def, ok := e.tools.Lookup(t); ok {
		return e.fail(ReasonToolNotOwned, msgToolNotOwned, "", def.Name)
	}
	return e.fail(ReasonToolUnknown, msgToolUnknown, "", naming.Humanize(string(t)))
}

// unreachable reports the deepest level the player can reach on obj and
// names the tool that would unlock more.
func (e *Engine) unreachable(obj *object.Object) Result {
	res := e.fail(ReasonLevelUnreachable, msgZoomInaccessible, "", obj.Name)
	res.Target = obj.ID
	res.ZoomLevel = obj.MaxZoomWithTools(e.playerTools)
	if required := obj.Constraints.RequiredToolType; required != "" {
		name := naming.Humanize(required)
		if def, ok := e.tools.Lookup(tool.Type(required)); ok {
			name = def.Name
		}
		res.Hint = e.printer.Sprintf(msgHintRequiredTool, name)
	} else if obj.Constraints.RequiresToolForFine {
		res.Hint = e.printer.Sprintf(msgHintAnyTool)
	}
	return res
}

// hiddenByDarkness reports whether a layer within reach is hidden only
// because the object is unlit.
func (e *Engine) hiddenByDarkness(obj *object.Object, level zoom.Level, v object.View) bool {
	if v.HasLight {
		return false
	}
	lit := v
	lit.HasLight = true
	return len(obj.VisibleLayers(level, lit)) > len(obj.VisibleLayers(level, v))
}

func (e *Engine) fail(reason Reason, key, hintKey string, args ...any) Result {
	res := Result{
		Success:     false,
		Description: e.printer.Sprintf(key, args...),
		Error:       reason,
	}
	if hintKey != "" {
		res.Hint = e.printer.Sprintf(hintKey)
	}
	return res
}

func joinParagraphs(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\n")
}

func appendUnique(values []string, more ...string) []string {
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		seen[v] = true
	}
	for _, v := range more {
		if !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	return values
}
