package zoom

import (
	"fmt"
	"strconv"

	apperrors "github.com/louisbranch/closerlook/internal/platform/errors"
)

// Level is an ordinal inspection detail tier.
//
// The numeric values are part of the save format and must not change.
type Level int

const (
	// Unspecified means "keep the current level" in engine calls.
	Unspecified Level = iota
	Coarse
	Medium
	Close
	Fine
)

var levelNames = map[Level]string{
	Coarse: "coarse",
	Medium: "medium",
	Close:  "close",
	Fine:   "fine",
}

var levelDescriptions = map[Level]string{
	Coarse: "general overview",
	Medium: "noticeable details",
	Close:  "fine details visible",
	Fine:   "microscopic details",
}

var levelMultipliers = map[Level]float64{
	Coarse: 1.0,
	Medium: 1.5,
	Close:  2.0,
	Fine:   3.0,
}

// Levels returns every valid level from Coarse to Fine.
func Levels() []Level {
	return []Level{Coarse, Medium, Close, Fine}
}

// Valid reports whether l is one of the four declared levels.
func (l Level) Valid() bool {
	return l >= Coarse && l <= Fine
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	if l == Unspecified {
		return "unspecified"
	}
	return "level(" + strconv.Itoa(int(l)) + ")"
}

// Description returns a short phrase for what can be seen at this level.
func (l Level) Description() string {
	return levelDescriptions[l]
}

// VisibilityMultiplier scales how much detail this level exposes.
func (l Level) VisibilityMultiplier() float64 {
	if m, ok := levelMultipliers[l]; ok {
		return m
	}
	return 1.0
}

// ZoomIn returns the next finer level, or Fine when already there.
func (l Level) ZoomIn() Level {
	if l >= Fine {
		return Fine
	}
	if l < Coarse {
		return Coarse
	}
	return l + 1
}

// ZoomOut returns the next coarser level, or Coarse when already there.
func (l Level) ZoomOut() Level {
	if l <= Coarse {
		return Coarse
	}
	if l > Fine {
		return Fine
	}
	return l - 1
}

// Clamp bounds l to [low, high].
func (l Level) Clamp(low, high Level) Level {
	if l < low {
		return low
	}
	if l > high {
		return high
	}
	return l
}

// ParseLevel resolves a level from its number or name.
func ParseLevel(raw string) (Level, error) {
	if n, err := strconv.Atoi(raw); err == nil {
		l := Level(n)
		if !l.Valid() {
			return Unspecified, invalidLevel(raw)
		}
		return l, nil
	}
	for l, name := range levelNames {
		if name == raw {
			return l, nil
		}
	}
	return Unspecified, invalidLevel(raw)
}

// MarshalJSON encodes the level as its number.
func (l Level) MarshalJSON() ([]byte, error) {
	if !l.Valid() {
		return nil, invalidLevel(l.String())
	}
	return []byte(strconv.Itoa(int(l))), nil
}

// UnmarshalJSON decodes a numeric level and rejects unknown values.
// Map keys arrive quoted, so one pair of quotes around the number is allowed.
func (l *Level) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		raw = raw[1 : len(raw)-1]
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeZoomLevelInvalid, fmt.Sprintf("zoom level %s is not a number", data), err)
	}
	parsed := Level(n)
	if !parsed.Valid() {
		return invalidLevel(string(data))
	}
	*l = parsed
	return nil
}

// MarshalText encodes the level for map keys.
func (l Level) MarshalText() ([]byte, error) {
	return l.MarshalJSON()
}

// UnmarshalText decodes map keys and YAML scalars; names are accepted too.
func (l *Level) UnmarshalText(data []byte) error {
	parsed, err := ParseLevel(string(data))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

func invalidLevel(raw string) error {
	return apperrors.WithMetadata(
		apperrors.CodeZoomLevelInvalid,
		fmt.Sprintf("unknown zoom level %q", raw),
		map[string]string{"Level": raw},
	)
}
