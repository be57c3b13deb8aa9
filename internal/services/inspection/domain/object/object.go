// Package object holds inspectable objects and their per-level detail layers.
//
// An object owns at most one layer per zoom level. Visibility resolution walks
// levels from Coarse to Fine and stops at the requested ceiling: a Fine layer
// is never surfaced for a Medium view, even when its own preconditions hold.
package object

import (
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/closerlook/internal/platform/errors"
	"github.com/louisbranch/closerlook/internal/services/inspection/domain/tool"
	"github.com/louisbranch/closerlook/internal/services/inspection/domain/zoom"
)

const (
	// DefaultDistance is how far an object sits when the scene does not say.
	DefaultDistance = 0.5
	// DefaultSize is the nominal size of an object when the scene does not say.
	DefaultSize = 1.0
)

// Object is one inspectable thing in the world.
type Object struct {
	ID              string                `json:"id" yaml:"id"`
	Name            string                `json:"name" yaml:"name"`
	BaseDescription string                `json:"base_description" yaml:"base_description"`
	Tags            []string              `json:"tags,omitempty" yaml:"tags"`
	Material        string                `json:"material,omitempty" yaml:"material"`
	Era             string                `json:"era,omitempty" yaml:"era"`
	Location        string                `json:"location,omitempty" yaml:"location"`
	Layers          map[zoom.Level]*Layer `json:"layers" yaml:"layers"`
	Constraints     zoom.Constraints      `json:"constraints" yaml:"constraints"`
	Distance        float64               `json:"distance" yaml:"distance"`
	Size            float64               `json:"size" yaml:"size"`
	InDarkness      bool                  `json:"in_darkness" yaml:"in_darkness"`
	// ProceduralDetails allows generated micro-details at Medium and deeper.
	ProceduralDetails bool `json:"procedural_details" yaml:"procedural_details"`
}

// Reveals groups the identifiers unlocked by visible layers.
type Reveals struct {
	Facts    []string
	Items    []string
	Hotspots []string
}

// Normalize fills defaults for unset constraints, distance and size, and
// stamps each layer with its map key when the layer left it unset.
func (o *Object) Normalize() {
	o.Constraints = o.Constraints.WithDefaults()
	if o.Distance == 0 {
		o.Distance = DefaultDistance
	}
	if o.Size == 0 {
		o.Size = DefaultSize
	}
	for level, layer := range o.Layers {
		if layer != nil && layer.ZoomLevel == zoom.Unspecified {
			layer.ZoomLevel = level
		}
	}
}

// Validate checks identity, constraints, layer keys and tool references.
// A nil catalog skips the tool checks.
func (o *Object) Validate(catalog *tool.Catalog) error {
	if strings.TrimSpace(o.ID) == "" {
		return apperrors.New(apperrors.CodeObjectInvalid, "object id is required")
	}
	if strings.TrimSpace(o.Name) == "" {
		return invalidObject(o.ID, "name is required")
	}
	if err := o.Constraints.Validate(); err != nil {
		return apperrors.WithMetadata(apperrors.CodeConstraintsInvalid,
			fmt.Sprintf("object %q: %v", o.ID, err), map[string]string{"ObjectID": o.ID})
	}
	if o.Constraints.RequiredToolType != "" && catalog != nil && !catalog.Has(tool.Type(o.Constraints.RequiredToolType)) {
		return unknownTool(o.ID, o.Constraints.RequiredToolType)
	}
	for level, layer := range o.Layers {
		if !level.Valid() {
			return invalidObject(o.ID, fmt.Sprintf("layer key %s is not a zoom level", level))
		}
		if layer == nil {
			return invalidObject(o.ID, fmt.Sprintf("layer %s is empty", level))
		}
		if layer.ZoomLevel != level {
			return invalidObject(o.ID, fmt.Sprintf("layer keyed %s declares level %s", level, layer.ZoomLevel))
		}
		if layer.RequiresTool != "" && catalog != nil && !catalog.Has(tool.Type(layer.RequiresTool)) {
			return unknownTool(o.ID, layer.RequiresTool)
		}
	}
	return nil
}

// SetLayer attaches layer at its own zoom level, replacing any existing one.
func (o *Object) SetLayer(layer *Layer) {
	if o.Layers == nil {
		o.Layers = map[zoom.Level]*Layer{}
	}
	o.Layers[layer.ZoomLevel] = layer
}

// Layer returns the layer at level, if any.
func (o *Object) Layer(level zoom.Level) (*Layer, bool) {
	layer, ok := o.Layers[level]
	return layer, ok && layer != nil
}

// VisibleLayers returns the viewable layers from Coarse up to maxZoom.
func (o *Object) VisibleLayers(maxZoom zoom.Level, v View) []*Layer {
	var out []*Layer
	for _, level := range zoom.Levels() {
		if level > maxZoom {
			break
		}
		layer, ok := o.Layer(level)
		if ok && layer.CanView(v) {
			out = append(out, layer)
		}
	}
	return out
}

// DescriptionAt joins the base description (at exactly Coarse) with the text
// of every visible layer up to level.
func (o *Object) DescriptionAt(level zoom.Level, v View, firstTime bool) string {
	var parts []string
	if level == zoom.Coarse && o.BaseDescription != "" {
		parts = append(parts, o.BaseDescription)
	}
	for _, layer := range o.VisibleLayers(level, v) {
		if text := layer.Text(firstTime); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n")
}

// Reveals unions reveal sets across visible layers without deduplicating.
func (o *Object) Reveals(maxZoom zoom.Level, v View) Reveals {
	var r Reveals
	for _, layer := range o.VisibleLayers(maxZoom, v) {
		r.Facts = append(r.Facts, layer.RevealsFacts...)
		r.Items = append(r.Items, layer.RevealsItems...)
		r.Hotspots = append(r.Hotspots, layer.RevealsHotspots...)
	}
	return r
}

// ASCIIArtAt returns the art of the deepest visible layer that has any.
func (o *Object) ASCIIArtAt(maxZoom zoom.Level, v View) string {
	art := ""
	for _, layer := range o.VisibleLayers(maxZoom, v) {
		if layer.ASCIIArt != "" {
			art = layer.ASCIIArt
		}
	}
	return art
}

// HasRequiredTool reports whether tools satisfy the object's Fine gate:
// an exact type match when one is named, otherwise any tool at all.
func (o *Object) HasRequiredTool(tools []tool.Tool) bool {
	required := o.Constraints.RequiredToolType
	if required == "" {
		return len(tools) > 0
	}
	for _, t := range tools {
		if string(t.Type) == required {
			return true
		}
	}
	return false
}

// CanZoomTo reports whether level is reachable with tools in hand.
func (o *Object) CanZoomTo(level zoom.Level, tools []tool.Tool) bool {
	return o.Constraints.IsLevelAccessible(level, o.HasRequiredTool(tools))
}

// MaxZoomWithTools returns the deepest level reachable with tools in hand.
func (o *Object) MaxZoomWithTools(tools []tool.Tool) zoom.Level {
	return o.Constraints.MaxAccessibleLevel(o.HasRequiredTool(tools))
}

func invalidObject(id, message string) error {
	return apperrors.WithMetadata(apperrors.CodeObjectInvalid,
		fmt.Sprintf("object %q: %s", id, message), map[string]string{"ObjectID": id})
}

func unknownTool(id, toolType string) error {
	return apperrors.WithMetadata(apperrors.CodeToolUnknown,
		fmt.Sprintf("object %q references unknown tool type %q", id, toolType),
		map[string]string{"ObjectID": id, "ToolType": toolType})
}
