// Package scene loads YAML scene files: the starting location, lighting,
// the player's kit and the inspectable objects of one playable area.
package scene

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/louisbranch/closerlook/internal/platform/errors"
	"github.com/louisbranch/closerlook/internal/services/inspection/domain/engine"
	"github.com/louisbranch/closerlook/internal/services/inspection/domain/object"
	"github.com/louisbranch/closerlook/internal/services/inspection/domain/tool"
)

//go:embed demo.yaml
var demoScene []byte

// Scene is one decoded scene file.
type Scene struct {
	Name     string `yaml:"name"`
	Location string `yaml:"location"`
	// HasLight defaults to true when omitted.
	HasLight *bool `yaml:"has_light"`
	// Seed replaces the engine seed when non-zero.
	Seed        int64           `yaml:"seed"`
	PlayerTools []tool.Type     `yaml:"player_tools"`
	KnownFacts  []string        `yaml:"known_facts"`
	Objects     []object.Object `yaml:"objects"`
}

// Lit reports the scene's ambient light.
func (s *Scene) Lit() bool {
	return s.HasLight == nil || *s.HasLight
}

// Parse decodes a scene document. Unknown fields are rejected.
func Parse(r io.Reader) (*Scene, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var s Scene
	if err := decoder.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, apperrors.New(apperrors.CodeSceneInvalid, "scene document is empty")
		}
		if apperrors.CodeOf(err) != apperrors.CodeUnknown {
			return nil, err
		}
		return nil, apperrors.Wrap(apperrors.CodeSceneInvalid, "decode scene", err)
	}
	if len(s.Objects) == 0 {
		return nil, apperrors.New(apperrors.CodeSceneInvalid, "scene declares no objects")
	}
	return &s, nil
}

// LoadFile reads and parses the scene at path.
func LoadFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return s, nil
}

// Demo returns the built-in study scene.
func Demo() (*Scene, error) {
	return Parse(bytes.NewReader(demoScene))
}

// Validate checks the scene against catalog without touching any engine:
// tool references, fact ids, object validity and duplicate ids.
func (s *Scene) Validate(catalog *tool.Catalog) error {
	for _, t := range s.PlayerTools {
		if !catalog.Has(t) {
			return apperrors.WithMetadata(apperrors.CodeToolUnknown,
				fmt.Sprintf("scene player tool %q is not in the catalog", t),
				map[string]string{"ToolType": string(t)})
		}
	}
	for _, fact := range s.KnownFacts {
		if strings.TrimSpace(fact) == "" {
			return apperrors.New(apperrors.CodeSceneInvalid, "scene known fact is blank")
		}
	}
	seen := make(map[string]bool, len(s.Objects))
	for _, obj := range s.Objects {
		candidate := obj
		candidate.Normalize()
		if err := candidate.Validate(catalog); err != nil {
			return err
		}
		if seen[obj.ID] {
			return apperrors.WithMetadata(apperrors.CodeObjectDuplicate,
				fmt.Sprintf("scene declares object %q twice", obj.ID),
				map[string]string{"ObjectID": obj.ID})
		}
		seen[obj.ID] = true
	}
	return nil
}

// Apply validates the scene and loads it into e. Nothing is applied when
// validation fails.
func (s *Scene) Apply(e *engine.Engine) error {
	if err := s.Validate(e.Tools()); err != nil {
		return err
	}
	if s.Seed != 0 {
		e.SetSeed(s.Seed)
	}
	e.SetLocation(s.Location)
	e.SetLight(s.Lit())
	for _, t := range s.PlayerTools {
		if err := e.AddPlayerTool(t); err != nil {
			return err
		}
	}
	for _, fact := range s.KnownFacts {
		e.AddFact(fact)
	}
	for _, obj := range s.Objects {
		if err := e.RegisterObject(obj); err != nil {
			return err
		}
	}
	return nil
}
