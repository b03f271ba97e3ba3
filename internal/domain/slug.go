package domain

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var slugSanitizer = regexp.MustCompile(`[^a-z0-9]+`)

var slugFolder = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives a URL-safe slug from a display name. Diacritics fold to
// their base letters and runs of non-alphanumerics collapse to single
// hyphens. An empty result means the name has no usable characters.
func Slugify(name string) string {
	folded, _, err := transform.String(slugFolder, name)
	if err != nil {
		folded = name
	}
	value := strings.ToLower(strings.TrimSpace(folded))
	value = slugSanitizer.ReplaceAllString(value, "-")
	return strings.Trim(value, "-")
}
