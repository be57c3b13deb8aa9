package engine

import (
	"strings"

	"go.uber.org/zap"

	"github.com/louisbranch/closerlook/internal/services/inspection/core/naming"
	"github.com/louisbranch/closerlook/internal/services/inspection/domain/object"
	"github.com/louisbranch/closerlook/internal/services/inspection/domain/parser"
	"github.com/louisbranch/closerlook/internal/services/inspection/domain/progress"
	"github.com/louisbranch/closerlook/internal/services/inspection/domain/tool"
	"github.com/louisbranch/closerlook/internal/services/inspection/domain/zoom"
)

// ProcessCommand parses text and runs it.
func (e *Engine) ProcessCommand(text string) Result {
	return e.ProcessCommandOn(text, "")
}

// ProcessCommandOn parses text and runs it against targetOverride when that
// is set, ignoring any target named in the text.
func (e *Engine) ProcessCommandOn(text, targetOverride string) Result {
	cmd := e.parser.Parse(text)
	if targetOverride != "" {
		cmd.Target = targetOverride
	}
	e.log.Debug("command parsed",
		zap.String("intent", cmd.Intent.String()),
		zap.String("target", cmd.Target),
		zap.String("tool", string(cmd.Tool)))
	return e.Execute(cmd)
}

// Execute runs an already parsed command.
func (e *Engine) Execute(cmd parser.Command) Result {
	switch cmd.Intent {
	case parser.Inspect:
		return e.handleInspect(cmd)
	case parser.ZoomIn:
		return e.handleZoomIn(cmd)
	case parser.ZoomOut:
		return e.handleZoomOut(cmd)
	case parser.UseTool:
		return e.handleUseTool(cmd)
	case parser.Directional:
		return e.handleDirectional(cmd)
	case parser.Focus:
		return e.handleFocus(cmd)
	case parser.Reset:
		return e.handleReset(cmd)
	default:
		return e.handleLookAround()
	}
}

func (e *Engine) handleLookAround() Result {
	var lines []string
	for _, id := range e.order {
		obj := e.objects[id]
		if e.location != "" && obj.Location != "" && obj.Location != e.location {
			continue
		}
		lines = append(lines, e.printer.Sprintf(msgLookAroundEntry, obj.Name))
	}
	if len(lines) == 0 {
		return Result{Success: true, Description: e.printer.Sprintf(msgLookAroundEmpty), ZoomLevel: zoom.Coarse}
	}
	header := e.printer.Sprintf(msgLookAroundHeader)
	return Result{
		Success:     true,
		Description: header + "\n" + strings.Join(lines, "\n"),
		ZoomLevel:   zoom.Coarse,
	}
}

func (e *Engine) handleInspect(cmd parser.Command) Result {
	obj, res, ok := e.resolve(cmd.Target)
	if !ok {
		return res
	}
	return e.InspectObject(obj.ID, zoom.Unspecified, "")
}

func (e *Engine) handleZoomIn(cmd parser.Command) Result {
	obj, res, ok := e.resolve(cmd.Target)
	if !ok {
		return res
	}
	return e.ZoomInOn(obj.ID)
}

func (e *Engine) handleZoomOut(cmd parser.Command) Result {
	obj, res, ok := e.resolve(cmd.Target)
	if !ok {
		return res
	}
	return e.ZoomOutFrom(obj.ID)
}

// handleUseTool applies a held tool and jumps past the current level by the
// tool's distance-attenuated bonus, bounded by what the tool unlocks.
func (e *Engine) handleUseTool(cmd parser.Command) Result {
	if cmd.Tool == "" {
		return e.fail(ReasonToolMissing, msgToolMissing, "")
	}
	held, ok := e.playerTool(cmd.Tool)
	if !ok {
		return e.toolNotHeld(cmd.Tool)
	}
	if cmd.Target == "" && e.current == "" {
		return e.fail(ReasonNoTarget, msgUseToolNoTarget, "", held.Name)
	}
	obj, res, ok := e.resolve(cmd.Target)
	if !ok {
		return res
	}
	if res, usable := e.checkTool(obj, held); !usable {
		return res
	}

	current := e.manager.CurrentLevel(obj.ID)
	ceiling := obj.MaxZoomWithTools([]tool.Tool{held})
	target := zoom.Level(int(current) + 1 + held.EffectiveZoomBonus(obj.Distance))
	target = target.Clamp(obj.Constraints.MinLevel, ceiling)

	res = e.InspectObject(obj.ID, target, held.Type)
	if res.Success {
		res.Description = joinParagraphs(e.printer.Sprintf(msgUseToolApplied, held.Name, obj.Name), res.Description)
	}
	return res
}

// handleDirectional surfaces hotspots within reach whose ids mention the
// direction, e.g. "under_drawer" for "look under the desk".
func (e *Engine) handleDirectional(cmd parser.Command) Result {
	obj, res, ok := e.resolve(cmd.Target)
	if !ok {
		return res
	}
	reach := obj.MaxZoomWithTools(e.playerTools)
	view := e.view(obj, e.activeTool(obj, reach, ""))

	var found []string
	for _, layer := range obj.VisibleLayers(reach, view) {
		for _, hotspot := range layer.RevealsHotspots {
			if strings.Contains(naming.NormalizeIdentifier(hotspot), cmd.Direction) {
				found = appendUnique(found, hotspot)
			}
		}
	}

	level := e.manager.CurrentLevel(obj.ID)
	if len(found) == 0 {
		res := e.fail(ReasonNothingFound, msgDirectionalNothing, "", cmd.Direction, obj.Name)
		res.Target = obj.ID
		res.ZoomLevel = level
		if e.hiddenByDarkness(obj, reach, view) {
			res.Hint = e.printer.Sprintf(msgHintLight)
		}
		return res
	}

	discovered := e.manager.RecordZoom(obj.ID, level, "", progress.Discoveries{Hotspots: found})
	e.current = obj.ID
	names := make([]string, len(found))
	for i, h := range found {
		names[i] = naming.Humanize(h)
	}
	return Result{
		Success:          true,
		Target:           obj.ID,
		Description:      e.printer.Sprintf(msgDirectionalFound, cmd.Direction, obj.Name, strings.Join(names, ", ")),
		ZoomLevel:        level,
		RevealedHotspots: found,
		Discovered:       discovered,
	}
}

// handleFocus inspects the shallowest reachable layer that mentions the
// feature. Without one, it describes the feature procedurally.
func (e *Engine) handleFocus(cmd parser.Command) Result {
	obj, res, ok := e.resolve(cmd.Target)
	if !ok {
		return res
	}
	feature := strings.ToLower(cmd.Feature)
	reach := obj.MaxZoomWithTools(e.playerTools)
	view := e.view(obj, e.activeTool(obj, reach, ""))
	for _, layer := range obj.VisibleLayers(reach, view) {
		shown := layer.Text(e.manager.IsFirstTimeAt(obj.ID, layer.ZoomLevel))
		if feature != "" && (mentions(shown, feature) || mentions(layer.Description, feature)) {
			return e.InspectObject(obj.ID, layer.ZoomLevel, "")
		}
	}

	level := e.manager.CurrentLevel(obj.ID)
	if feature != "" {
		subject := e.subject(obj, level)
		if text, ok := e.generator.GenerateDetail(subject, "feature", map[string]string{"feature": feature}); ok {
			e.current = obj.ID
			return Result{Success: true, Target: obj.ID, Description: text + ".", ZoomLevel: level}
		}
	}
	res = e.fail(ReasonNothingFound, msgFocusNothing, "", feature, obj.Name)
	res.Target = obj.ID
	res.ZoomLevel = level
	return res
}

func mentions(text, feature string) bool {
	return strings.Contains(strings.ToLower(text), feature)
}

// handleReset returns the target to its widest view, or clears the implicit
// target when there is nothing to reset.
func (e *Engine) handleReset(cmd parser.Command) Result {
	if cmd.Target == "" && e.current == "" {
		return Result{Success: true, Description: e.printer.Sprintf(msgResetCleared), ZoomLevel: zoom.Coarse}
	}
	obj, res, ok := e.resolve(cmd.Target)
	if !ok {
		return res
	}
	res = e.InspectObject(obj.ID, obj.Constraints.MinLevel, "")
	if res.Success {
		res.Description = joinParagraphs(e.printer.Sprintf(msgResetDone, obj.Name), res.Description)
	}
	return res
}

// resolve finds the object a phrase names. An empty phrase means the
// implicit target. Exact ids win, then names and ids that overlap the phrase
// in either direction, in registration order.
func (e *Engine) resolve(phrase string) (*object.Object, Result, bool) {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		if obj, ok := e.objects[e.current]; ok {
			return obj, Result{}, true
		}
		return nil, e.fail(ReasonNoTarget, msgTargetNone, ""), false
	}
	if obj, ok := e.objects[phrase]; ok {
		return obj, Result{}, true
	}
	if obj, ok := e.objects[naming.NormalizeIdentifier(phrase)]; ok {
		return obj, Result{}, true
	}
	for _, id := range e.order {
		obj := e.objects[id]
		if naming.ContainsFold(obj.Name, phrase) || naming.ContainsFold(naming.Humanize(obj.ID), phrase) {
			return obj, Result{}, true
		}
	}
	return nil, e.fail(ReasonTargetNotFound, msgTargetNotFound, "", phrase), false
}
