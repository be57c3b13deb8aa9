// Package i18n embeds the player-facing message catalogs for inspection.
package i18n

import (
	"embed"

	"github.com/louisbranch/closerlook/internal/platform/i18n/catalog"
)

//go:embed locales/*/*.yaml
var localesFS embed.FS

// Load parses the embedded catalogs.
func Load() (*catalog.Bundle, error) {
	return catalog.LoadFromFS(localesFS)
}
