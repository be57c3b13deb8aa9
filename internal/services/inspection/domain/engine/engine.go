// Package engine orchestrates inspection: it owns the object registry, the
// player's tools and facts, per-object progress and procedural detail, and
// turns parsed commands into results.
//
// An Engine is not safe for concurrent use. Callers that share one across
// goroutines must serialize access.
package engine

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/text/message"

	apperrors "github.com/louisbranch/closerlook/internal/platform/errors"
	"github.com/louisbranch/closerlook/internal/platform/i18n/catalog"
	"github.com/louisbranch/closerlook/internal/services/inspection/domain/detail"
	"github.com/louisbranch/closerlook/internal/services/inspection/domain/object"
	"github.com/louisbranch/closerlook/internal/services/inspection/domain/parser"
	"github.com/louisbranch/closerlook/internal/services/inspection/domain/progress"
	"github.com/louisbranch/closerlook/internal/services/inspection/domain/tool"
	"github.com/louisbranch/closerlook/internal/services/inspection/domain/zoom"
	"github.com/louisbranch/closerlook/internal/services/inspection/i18n"
)

// Config wires an Engine. Zero values select the built-in catalogs.
type Config struct {
	Tools    *tool.Catalog
	Library  *detail.Library
	Messages *catalog.Bundle
	Locale   string
	Seed     int64
	Logger   *zap.Logger
}

// Engine is the inspection orchestrator.
type Engine struct {
	tools     *tool.Catalog
	parser    *parser.Parser
	manager   *progress.Manager
	generator *detail.Generator
	printer   *message.Printer
	log       *zap.Logger

	objects     map[string]*object.Object
	order       []string
	playerTools []tool.Tool
	facts       map[string]bool
	hasLight    bool
	location    string
	current     string
}

// New builds an engine. Ambient light starts on.
func New(cfg Config) (*Engine, error) {
	tools := cfg.Tools
	if tools == nil {
		tools = tool.DefaultCatalog()
	}
	bundle := cfg.Messages
	if bundle == nil {
		var err error
		bundle, err = i18n.Load()
		if err != nil {
			return nil, fmt.Errorf("load messages: %w", err)
		}
	}
	printer, err := bundle.Printer(cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("message printer: %w", err)
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		tools:     tools,
		parser:    parser.New(tools),
		manager:   progress.NewManager(),
		generator: detail.NewGenerator(cfg.Seed, cfg.Library),
		printer:   printer,
		log:       log,
		objects:   map[string]*object.Object{},
		facts:     map[string]bool{},
		hasLight:  true,
	}, nil
}

// RegisterObject validates obj and adds a private copy to the registry.
func (e *Engine) RegisterObject(obj object.Object) error {
	registered := cloneObject(obj)
	registered.Normalize()
	if err := registered.Validate(e.tools); err != nil {
		return err
	}
	if _, exists := e.objects[registered.ID]; exists {
		return apperrors.WithMetadata(apperrors.CodeObjectDuplicate,
			fmt.Sprintf("object %q already registered", registered.ID),
			map[string]string{"ObjectID": registered.ID})
	}
	e.objects[registered.ID] = registered
	e.order = append(e.order, registered.ID)
	e.log.Debug("object registered",
		zap.String("object_id", registered.ID),
		zap.Int("layers", len(registered.Layers)),
		zap.Stringer("max_level", registered.Constraints.MaxLevel))
	return nil
}

// Object returns a copy of a registered object.
func (e *Engine) Object(id string) (object.Object, bool) {
	obj, ok := e.objects[id]
	if !ok {
		return object.Object{}, false
	}
	return *cloneObject(*obj), true
}

// ObjectIDs lists registered objects in registration order.
func (e *Engine) ObjectIDs() []string {
	return append([]string(nil), e.order...)
}

// AddPlayerTool gives the player a catalog tool. Adding a held tool is a
// no-op.
func (e *Engine) AddPlayerTool(t tool.Type) error {
	def, ok := e.tools.Lookup(t)
	if !ok {
		return apperrors.WithMetadata(apperrors.CodeToolUnknown,
			fmt.Sprintf("unknown tool type %q", t), map[string]string{"ToolType": string(t)})
	}
	if e.HasTool(t) {
		return nil
	}
	e.playerTools = append(e.playerTools, def)
	e.log.Debug("tool added", zap.String("tool", string(t)))
	return nil
}

// RemovePlayerTool takes a tool away. It reports whether the tool was held.
func (e *Engine) RemovePlayerTool(t tool.Type) bool {
	for i, held := range e.playerTools {
		if held.Type == t {
			e.playerTools = append(e.playerTools[:i], e.playerTools[i+1:]...)
			return true
		}
	}
	return false
}

// HasTool reports whether the player holds t.
func (e *Engine) HasTool(t tool.Type) bool {
	_, ok := e.playerTool(t)
	return ok
}

func (e *Engine) playerTool(t tool.Type) (tool.Tool, bool) {
	for _, held := range e.playerTools {
		if held.Type == t {
			return held, true
		}
	}
	return tool.Tool{}, false
}

// PlayerTools returns the held tools in acquisition order.
func (e *Engine) PlayerTools() []tool.Tool {
	return append([]tool.Tool(nil), e.playerTools...)
}

// Tools returns the tool catalog the engine resolves against.
func (e *Engine) Tools() *tool.Catalog { return e.tools }

// AddFact grants a fact directly, e.g. from dialogue.
func (e *Engine) AddFact(id string) {
	if id != "" {
		e.facts[id] = true
	}
}

// HasFact reports whether the player knows id.
func (e *Engine) HasFact(id string) bool { return e.facts[id] }

// PlayerFacts returns known facts sorted.
func (e *Engine) PlayerFacts() []string {
	out := make([]string, 0, len(e.facts))
	for id := range e.facts {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// SetLight records whether the surroundings are lit.
func (e *Engine) SetLight(on bool) { e.hasLight = on }

// HasLight reports the ambient light flag.
func (e *Engine) HasLight() bool { return e.hasLight }

// SetLocation records where the player is. An empty location disables the
// look-around filter.
func (e *Engine) SetLocation(location string) { e.location = location }

// Location returns the current location id.
func (e *Engine) Location() string { return e.location }

// SetTime moves the game clock used for progress timestamps.
func (e *Engine) SetTime(t float64) { e.manager.SetTime(t) }

// AdvanceTime moves the game clock forward.
func (e *Engine) AdvanceTime(dt float64) { e.manager.AdvanceTime(dt) }

// Seed returns the procedural detail seed.
func (e *Engine) Seed() int64 { return e.generator.Seed() }

// SetSeed reseeds procedural detail and drops every cached detail.
func (e *Engine) SetSeed(seed int64) {
	e.generator.SetSeed(seed)
	e.log.Debug("seed changed", zap.Int64("seed", seed))
}

// AddTemplate adds a custom detail template to this engine only.
func (e *Engine) AddTemplate(t detail.Template) error {
	return e.generator.AddTemplate(t)
}

// CurrentLevel returns the zoom level id is viewed at; untracked objects
// report Coarse.
func (e *Engine) CurrentLevel(id string) zoom.Level { return e.manager.CurrentLevel(id) }

// CurrentTarget returns the implicit target of follow-up commands.
func (e *Engine) CurrentTarget() string { return e.current }

// ObjectState returns the progress for id without creating it.
func (e *Engine) ObjectState(id string) (progress.State, bool) {
	return e.manager.Lookup(id)
}

// History returns the zoom history of one object.
func (e *Engine) History(id string) []progress.Entry {
	return e.manager.HistoryFor(id)
}

// IsFullyInspected reports whether id has been seen at Fine.
func (e *Engine) IsFullyInspected(id string) bool {
	return e.manager.IsFullyInspected(id)
}

// RecentlyInspected lists objects inspected within window game seconds.
func (e *Engine) RecentlyInspected(window float64) []string {
	return e.manager.RecentlyInspected(window)
}

// Statistics summarizes inspection progress.
func (e *Engine) Statistics() progress.Statistics {
	return e.manager.Statistics()
}

// lit reports whether obj can be seen in light: ambient light reaches it, or
// the player carries something that illuminates.
func (e *Engine) lit(obj *object.Object) bool {
	if e.hasLight && !obj.InDarkness {
		return true
	}
	for _, t := range e.playerTools {
		if t.HasAffordance(tool.AffordanceIlluminate) {
			return true
		}
	}
	return false
}

func (e *Engine) view(obj *object.Object, active tool.Type) object.View {
	return object.View{
		HasTool:    active != "",
		ToolType:   string(active),
		HasLight:   e.lit(obj),
		KnownFacts: e.facts,
	}
}

func (e *Engine) subject(obj *object.Object, level zoom.Level) detail.Subject {
	return detail.Subject{
		ObjectID: obj.ID,
		Level:    level,
		Tags:     obj.Tags,
		Material: obj.Material,
		Era:      obj.Era,
	}
}

func cloneObject(obj object.Object) *object.Object {
	out := obj
	out.Tags = append([]string(nil), obj.Tags...)
	if obj.Layers != nil {
		out.Layers = make(map[zoom.Level]*object.Layer, len(obj.Layers))
		for level, layer := range obj.Layers {
			if layer == nil {
				out.Layers[level] = nil
				continue
			}
			copied := *layer
			copied.RevealsFacts = append([]string(nil), layer.RevealsFacts...)
			copied.RevealsItems = append([]string(nil), layer.RevealsItems...)
			copied.RevealsHotspots = append([]string(nil), layer.RevealsHotspots...)
			out.Layers[level] = &copied
		}
	}
	return &out
}
