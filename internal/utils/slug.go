// internal/utils/slug.go
package utils

import (
	"regexp"
	"strings"
)

var (
	accentReplacer = strings.NewReplacer(
		"á", "a", "à", "a", "ä", "a", "â", "a",
		"é", "e", "è", "e", "ë", "e", "ê", "e",
		"í", "i", "ì", "i", "ï", "i", "î", "i",
		"ó", "o", "ò", "o", "ö", "o", "ô", "o",
		"ú", "u", "ù", "u", "ü", "u", "û", "u",
		"ñ", "n",
	)
	slugInvalid = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugHyphens = regexp.MustCompile(`-+`)
)

// GenerateSlug turns a display name into a URL token:
// "Alejandra González" → "alejandra-gonzalez". The same normalization is
// used for advisor URLs and for legacy moto card ids, and it is idempotent:
// GenerateSlug(GenerateSlug(x)) == GenerateSlug(x).
func GenerateSlug(name string) string {
	s := strings.TrimSpace(strings.ToLower(name))
	s = accentReplacer.Replace(s)
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	return slugHyphens.ReplaceAllString(s, "-")
}
