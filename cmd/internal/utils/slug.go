package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	reSlugDrop = regexp.MustCompile(`[^\w\s-]`)
	reSlugDash = regexp.MustCompile(`[-\s]+`)
)

// Slugify turns free text into a URL and path friendly token.
// Accents are stripped ("SÃO" -> "sao"), anything other than letters, digits,
// underscores, spaces and hyphens is dropped, and runs of spaces or hyphens
// collapse into a single "-". Leading and trailing "-" and "_" are trimmed.
func Slugify(s string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(s) {
		if r > unicode.MaxASCII {
			continue
		}
		b.WriteRune(r)
	}

	out := reSlugDrop.ReplaceAllString(strings.ToLower(b.String()), "")
	out = reSlugDash.ReplaceAllString(out, "-")
	return strings.Trim(out, "-_")
}
