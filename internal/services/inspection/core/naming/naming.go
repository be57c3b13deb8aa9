// Package naming provides identifier normalization shared by the tool
// catalog, the command parser and scene loading, so that "Magnifying Glass",
// "magnifying-glass" and "magnifying_glass" all name the same tool.
package naming

import "strings"

// NormalizeIdentifier converts a free-form phrase (e.g. "Magnifying Glass",
// "UV-lamp") into the canonical lowercase underscore-separated identifier
// used for tool types and object ids ("magnifying_glass", "uv_lamp").
func NormalizeIdentifier(phrase string) string {
	trimmed := strings.TrimSpace(phrase)
	if trimmed == "" {
		return ""
	}
	normalized := strings.ToLower(trimmed)
	var b strings.Builder
	b.Grow(len(normalized))
	lastUnderscore := false
	for _, r := range normalized {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.Trim(b.String(), "_")
}

// Humanize turns an identifier back into display words: "magnifying_glass"
// becomes "magnifying glass".
func Humanize(identifier string) string {
	return strings.TrimSpace(strings.ReplaceAll(identifier, "_", " "))
}

// ContainsFold reports whether a and b overlap case-insensitively in either
// direction: "desk" matches "Antique Desk" and "the antique desk drawer"
// matches "Antique Desk".
func ContainsFold(a, b string) bool {
	la := strings.ToLower(strings.TrimSpace(a))
	lb := strings.ToLower(strings.TrimSpace(b))
	if la == "" || lb == "" {
		return false
	}
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}
