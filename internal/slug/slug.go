// Package slug derives URL-safe identifiers from titles.
package slug

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Generate lowercases the title and maps every non-alphanumeric rune to a
// hyphen, collapsing runs and trimming the ends. A title with no usable runes
// falls back to a random UUID so the result is never empty.
func Generate(title string) string {
	lowered := strings.ToLower(title)

	var b strings.Builder
	for _, r := range lowered {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('-')
		}
	}

	parts := strings.FieldsFunc(b.String(), func(r rune) bool { return r == '-' })
	slug := strings.Join(parts, "-")

	if slug == "" {
		return uuid.New().String()
	}
	return slug
}

// Unique appends a short random suffix for use when the base slug collides
// with an existing row.
func Unique(base string) string {
	short := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return base + "-" + short
}
