package helpers

import (
	"regexp"
	"strings"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe key from a display name: lowercased,
// non-alphanumeric runs collapsed to single hyphens, edges trimmed.
// "Fall 2025" becomes "fall-2025".
func Slugify(name string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}
