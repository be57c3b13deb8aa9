package tool

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/louisbranch/closerlook/internal/platform/errors"
	"github.com/louisbranch/closerlook/internal/services/inspection/core/naming"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

type catalogFile struct {
	Tools []Tool `yaml:"tools"`
}

// Catalog is an immutable set of tool definitions keyed by type.
type Catalog struct {
	tools map[Type]Tool
	order []Type
	names map[string]Type
}

// DefaultCatalog returns the built-in tool catalog.
//
// The embedded data is validated by tests; a failure here is a build defect.
func DefaultCatalog() *Catalog {
	c, err := LoadCatalog(embeddedCatalog)
	if err != nil {
		panic(err)
	}
	return c
}

// LoadCatalog decodes a YAML catalog document.
func LoadCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeToolInvalid, "decode tool catalog", err)
	}
	return NewCatalog(file.Tools)
}

// NewCatalog validates tools and indexes them by type, name and alias.
func NewCatalog(tools []Tool) (*Catalog, error) {
	c := &Catalog{
		tools: make(map[Type]Tool, len(tools)),
		names: map[string]Type{},
	}
	for _, t := range tools {
		t.Type = Type(naming.NormalizeIdentifier(string(t.Type)))
		if err := validateTool(t); err != nil {
			return nil, err
		}
		if _, exists := c.tools[t.Type]; exists {
			return nil, apperrors.New(apperrors.CodeToolInvalid, fmt.Sprintf("tool type %q defined twice", t.Type))
		}
		c.tools[t.Type] = t
		c.order = append(c.order, t.Type)

		for _, phrase := range append([]string{t.Name}, t.Aliases...) {
			key := naming.NormalizeIdentifier(phrase)
			if key == "" {
				continue
			}
			if owner, exists := c.names[key]; exists && owner != t.Type {
				return nil, apperrors.New(apperrors.CodeToolInvalid, fmt.Sprintf("tool name %q claimed by %q and %q", phrase, owner, t.Type))
			}
			c.names[key] = t.Type
		}
	}
	return c, nil
}

func validateTool(t Tool) error {
	if t.Type == "" {
		return apperrors.New(apperrors.CodeToolInvalid, "tool type is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return apperrors.New(apperrors.CodeToolInvalid, fmt.Sprintf("tool %q: name is required", t.Type))
	}
	for _, a := range t.Affordances {
		if !a.Valid() {
			return apperrors.New(apperrors.CodeAffordanceInvalid, fmt.Sprintf("tool %q: unknown affordance %q", t.Type, a))
		}
	}
	if t.EffectiveRange < 0 || t.MinSize < 0 {
		return apperrors.New(apperrors.CodeToolInvalid, fmt.Sprintf("tool %q: range and min size must be non-negative", t.Type))
	}
	return nil
}

// Lookup returns the definition for a tool type.
func (c *Catalog) Lookup(t Type) (Tool, bool) {
	if c == nil {
		return Tool{}, false
	}
	tool, ok := c.tools[t]
	return tool, ok
}

// Has reports whether the catalog defines t.
func (c *Catalog) Has(t Type) bool {
	_, ok := c.Lookup(t)
	return ok
}

// Resolve maps a free-form phrase ("magnifier", "Magnifying Glass") to a
// tool type through type ids, display names and aliases.
func (c *Catalog) Resolve(phrase string) (Type, bool) {
	if c == nil {
		return "", false
	}
	key := naming.NormalizeIdentifier(phrase)
	if key == "" {
		return "", false
	}
	if _, ok := c.tools[Type(key)]; ok {
		return Type(key), true
	}
	if t, ok := c.names[key]; ok {
		return t, true
	}
	return "", false
}

// Types returns tool types in declaration order.
func (c *Catalog) Types() []Type {
	if c == nil {
		return nil
	}
	out := make([]Type, len(c.order))
	copy(out, c.order)
	return out
}

// Phrases returns every name and alias the catalog resolves, longest first so
// that multi-word names win over their suffixes when matching text.
func (c *Catalog) Phrases() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.names))
	for key := range c.names {
		out = append(out, naming.Humanize(key))
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}
