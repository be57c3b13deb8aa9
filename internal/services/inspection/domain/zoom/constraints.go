package zoom

import (
	"fmt"

	apperrors "github.com/louisbranch/closerlook/internal/platform/errors"
)

// Constraints bound the zoom levels one object supports.
type Constraints struct {
	MinLevel            Level  `json:"min_level" yaml:"min_level"`
	MaxLevel            Level  `json:"max_level" yaml:"max_level"`
	RequiresToolForFine bool   `json:"requires_tool_for_fine" yaml:"requires_tool_for_fine"`
	RequiredToolType    string `json:"required_tool_type,omitempty" yaml:"required_tool_type"`
	// MaxUnaidedLevel caps the player when Fine is gated and the tool is missing.
	MaxUnaidedLevel Level `json:"max_unaided_level" yaml:"max_unaided_level"`
}

// DefaultConstraints allows every level without any tool.
func DefaultConstraints() Constraints {
	return Constraints{
		MinLevel:        Coarse,
		MaxLevel:        Fine,
		MaxUnaidedLevel: Close,
	}
}

// WithDefaults fills unset levels from DefaultConstraints.
func (c Constraints) WithDefaults() Constraints {
	def := DefaultConstraints()
	if c.MinLevel == Unspecified {
		c.MinLevel = def.MinLevel
	}
	if c.MaxLevel == Unspecified {
		c.MaxLevel = def.MaxLevel
	}
	if c.MaxUnaidedLevel == Unspecified {
		c.MaxUnaidedLevel = def.MaxUnaidedLevel
		if c.MaxUnaidedLevel > c.MaxLevel {
			c.MaxUnaidedLevel = c.MaxLevel
		}
	}
	return c
}

// Validate checks the level bounds.
func (c Constraints) Validate() error {
	bounds := []struct {
		name  string
		level Level
	}{
		{name: "min_level", level: c.MinLevel},
		{name: "max_level", level: c.MaxLevel},
		{name: "max_unaided_level", level: c.MaxUnaidedLevel},
	}
	for _, b := range bounds {
		if !b.level.Valid() {
			return invalidConstraints(fmt.Sprintf("%s %s is not a zoom level", b.name, b.level))
		}
	}
	if c.MinLevel > c.MaxLevel {
		return invalidConstraints(fmt.Sprintf("min_level %s exceeds max_level %s", c.MinLevel, c.MaxLevel))
	}
	if c.MaxUnaidedLevel > c.MaxLevel {
		return invalidConstraints(fmt.Sprintf("max_unaided_level %s exceeds max_level %s", c.MaxUnaidedLevel, c.MaxLevel))
	}
	return nil
}

// IsLevelAccessible reports whether level can be viewed.
//
// Only Fine is tool-gated; the other levels depend on the bounds alone.
func (c Constraints) IsLevelAccessible(level Level, hasRequiredTool bool) bool {
	if level < c.MinLevel || level > c.MaxLevel {
		return false
	}
	if level == Fine && c.RequiresToolForFine && !hasRequiredTool {
		return false
	}
	return true
}

// MaxAccessibleLevel returns the deepest reachable level.
func (c Constraints) MaxAccessibleLevel(hasRequiredTool bool) Level {
	if c.RequiresToolForFine && !hasRequiredTool {
		return c.MaxUnaidedLevel
	}
	return c.MaxLevel
}

func invalidConstraints(message string) error {
	return apperrors.New(apperrors.CodeConstraintsInvalid, message)
}
