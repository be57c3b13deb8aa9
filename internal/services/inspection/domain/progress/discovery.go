// Package progress tracks per-object inspection state and the zoom history.
//
// The Manager is the only writer. RecordZoom is its single mutation entry
// point; every other method either delegates to it or reads.
package progress

import (
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/closerlook/internal/platform/errors"
)

// Kind names what a discovery unlocked.
type Kind string

const (
	KindFact    Kind = "fact"
	KindItem    Kind = "item"
	KindHotspot Kind = "hotspot"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindFact, KindItem, KindHotspot:
		return true
	default:
		return false
	}
}

// Discovery is one newly unlocked fact, item or hotspot.
type Discovery struct {
	Kind Kind
	ID   string
}

// Fact builds a fact discovery.
func Fact(id string) Discovery { return Discovery{Kind: KindFact, ID: id} }

// Item builds an item discovery.
func Item(id string) Discovery { return Discovery{Kind: KindItem, ID: id} }

// Hotspot builds a hotspot discovery.
func Hotspot(id string) Discovery { return Discovery{Kind: KindHotspot, ID: id} }

// String renders the discovery as "kind:id".
func (d Discovery) String() string {
	return string(d.Kind) + ":" + d.ID
}

// ParseDiscovery reads the "kind:id" form.
func ParseDiscovery(raw string) (Discovery, error) {
	kind, id, ok := strings.Cut(raw, ":")
	if !ok || id == "" || !Kind(kind).Valid() {
		return Discovery{}, apperrors.WithMetadata(
			apperrors.CodeDiscoveryInvalid,
			fmt.Sprintf("discovery %q is not kind:id", raw),
			map[string]string{"Discovery": raw},
		)
	}
	return Discovery{Kind: Kind(kind), ID: id}, nil
}

// MarshalText encodes the discovery as "kind:id".
func (d Discovery) MarshalText() ([]byte, error) {
	if !d.Kind.Valid() || d.ID == "" {
		return nil, apperrors.New(apperrors.CodeDiscoveryInvalid, fmt.Sprintf("discovery %q is incomplete", d.String()))
	}
	return []byte(d.String()), nil
}

// UnmarshalText decodes "kind:id" and rejects unknown kinds.
func (d *Discovery) UnmarshalText(data []byte) error {
	parsed, err := ParseDiscovery(string(data))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Discoveries are the identifiers offered to RecordZoom by one inspection.
type Discoveries struct {
	Facts    []string
	Items    []string
	Hotspots []string
}

// Empty reports whether nothing was offered.
func (d Discoveries) Empty() bool {
	return len(d.Facts) == 0 && len(d.Items) == 0 && len(d.Hotspots) == 0
}
