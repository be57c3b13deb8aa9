package detail

import (
	_ "embed"
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/closerlook/internal/platform/errors"
	"gopkg.in/yaml.v3"
)

// DefaultDetailType is assigned to templates that do not declare one.
const DefaultDetailType = "general"

//go:embed templates.yaml
var embeddedLibrary []byte

// Template is one procedural detail pattern.
type Template struct {
	Pattern           string   `json:"pattern" yaml:"pattern"`
	DetailType        string   `json:"detail_type" yaml:"detail_type"`
	RequiredTags      []string `json:"required_tags,omitempty" yaml:"required_tags"`
	RequiredMaterials []string `json:"required_materials,omitempty" yaml:"required_materials"`
	// Significance is the probability (0-1) that the template grants its fact.
	Significance float64 `json:"significance" yaml:"significance"`
	FactTemplate string  `json:"fact_template,omitempty" yaml:"fact_template"`
}

// AppliesTo reports whether the template fits an object. Required tags match
// when any one is present; required materials must include material. An
// empty detailType matches every template.
func (t Template) AppliesTo(tags []string, material string, detailType string) bool {
	if len(t.RequiredTags) > 0 && !anyTag(t.RequiredTags, tags) {
		return false
	}
	if len(t.RequiredMaterials) > 0 && !containsFold(t.RequiredMaterials, material) {
		return false
	}
	if detailType != "" && t.DetailType != detailType {
		return false
	}
	return true
}

var builtinPlaceholders = map[string]bool{
	"material":  true,
	"era":       true,
	"adjective": true,
	"noun":      true,
}

// contextSatisfied reports whether every non-builtin {key} in the pattern has
// a value in context.
func (t Template) contextSatisfied(context map[string]string) bool {
	rest := t.Pattern
	for {
		start := strings.IndexByte(rest, '{')
		if start < 0 {
			return true
		}
		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			return true
		}
		key := rest[start+1 : start+end]
		if !builtinPlaceholders[key] {
			if _, ok := context[key]; !ok {
				return false
			}
		}
		rest = rest[start+end+1:]
	}
}

func (t Template) validate() error {
	if strings.TrimSpace(t.Pattern) == "" {
		return apperrors.New(apperrors.CodeLibraryInvalid, "template pattern is required")
	}
	if t.Significance < 0 || t.Significance > 1 {
		return apperrors.New(apperrors.CodeLibraryInvalid,
			fmt.Sprintf("template %q: significance %v outside [0,1]", t.Pattern, t.Significance))
	}
	return nil
}

func anyTag(required, tags []string) bool {
	for _, want := range required {
		if containsFold(tags, want) {
			return true
		}
	}
	return false
}

func containsFold(values []string, want string) bool {
	for _, v := range values {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}

type libraryFile struct {
	Adjectives []string   `yaml:"adjectives"`
	Nouns      []string   `yaml:"nouns"`
	Templates  []Template `yaml:"templates"`
}

// Library is the immutable shared template set plus the word lists used for
// {adjective} and {noun} substitution.
type Library struct {
	templates  []Template
	adjectives []string
	nouns      []string
}

// DefaultLibrary returns the built-in template library.
func DefaultLibrary() *Library {
	lib, err := LoadLibrary(embeddedLibrary)
	if err != nil {
		panic(err)
	}
	return lib
}

// LoadLibrary decodes a YAML library document.
func LoadLibrary(data []byte) (*Library, error) {
	var file libraryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeLibraryInvalid, "decode template library", err)
	}
	return NewLibrary(file.Templates, file.Adjectives, file.Nouns)
}

// NewLibrary validates and copies the given templates and word lists.
func NewLibrary(templates []Template, adjectives, nouns []string) (*Library, error) {
	if len(adjectives) == 0 || len(nouns) == 0 {
		return nil, apperrors.New(apperrors.CodeLibraryInvalid, "library needs adjectives and nouns")
	}
	lib := &Library{
		templates:  make([]Template, 0, len(templates)),
		adjectives: append([]string(nil), adjectives...),
		nouns:      append([]string(nil), nouns...),
	}
	for _, t := range templates {
		if t.DetailType == "" {
			t.DetailType = DefaultDetailType
		}
		if err := t.validate(); err != nil {
			return nil, err
		}
		lib.templates = append(lib.templates, t)
	}
	return lib, nil
}

// Templates returns a copy of the library templates in declaration order.
func (l *Library) Templates() []Template {
	return append([]Template(nil), l.templates...)
}
