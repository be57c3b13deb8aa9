package tool

import (
	"fmt"

	apperrors "github.com/louisbranch/closerlook/internal/platform/errors"
)

// Affordance is a named capability a tool grants.
//
// The string values are part of the save format.
type Affordance string

const (
	AffordanceMagnify      Affordance = "magnify"
	AffordanceDistantView  Affordance = "distant_view"
	AffordanceIlluminate   Affordance = "illuminate"
	AffordanceReadSmall    Affordance = "read_small"
	AffordanceRevealHidden Affordance = "reveal_hidden"
	AffordanceIndirectView Affordance = "indirect_view"
	AffordanceListen       Affordance = "listen"
	AffordancePhysical     Affordance = "physical"
)

// Affordances returns every declared affordance.
func Affordances() []Affordance {
	return []Affordance{
		AffordanceMagnify,
		AffordanceDistantView,
		AffordanceIlluminate,
		AffordanceReadSmall,
		AffordanceRevealHidden,
		AffordanceIndirectView,
		AffordanceListen,
		AffordancePhysical,
	}
}

// Valid reports whether a is a declared affordance.
func (a Affordance) Valid() bool {
	for _, known := range Affordances() {
		if a == known {
			return true
		}
	}
	return false
}

// UnmarshalText rejects unknown affordances so corrupt data fails on load.
func (a *Affordance) UnmarshalText(data []byte) error {
	parsed := Affordance(data)
	if !parsed.Valid() {
		return apperrors.WithMetadata(
			apperrors.CodeAffordanceInvalid,
			fmt.Sprintf("unknown affordance %q", string(data)),
			map[string]string{"Affordance": string(data)},
		)
	}
	*a = parsed
	return nil
}
