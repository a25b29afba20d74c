package slug

import (
	"strings"
	"unicode"
)

// Derive converts a display name into a URL-safe identifier.
// PRE: name is any string, including empty
// POST: Returns a lowercase hyphen-separated identifier, or "" when nothing survives
// INVARIANT: Output matches [a-z0-9]+(-[a-z0-9]+)* or is empty
func Derive(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	b.Grow(len(lowered))
	pendingHyphen := false
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case unicode.IsSpace(r), r == '-', r == '.':
			// Periods separate initials ("R. J Prabhas" -> "r-j-prabhas"),
			// so they count as word breaks alongside whitespace and hyphens.
			pendingHyphen = true
		default:
			// Punctuation and non-ASCII letters are dropped without
			// introducing a break ("O'Brien" -> "obrien").
		}
	}
	return b.String()
}

// ToDisplayName reconstructs a plausible display name from a slug.
// This is a lossy inverse of Derive: original capitalization, diacritics and
// punctuation cannot be recovered. Use only when no real record exists.
// PRE: s is any string, typically a slug
// POST: Returns space-separated tokens with the first letter of each upcased
func ToDisplayName(s string) string {
	parts := strings.Split(s, "-")
	words := parts[:0]
	for _, p := range parts {
		if p == "" {
			continue
		}
		words = append(words, strings.ToUpper(p[:1])+strings.ToLower(p[1:]))
	}
	return strings.Join(words, " ")
}

// Valid reports whether s is a well-formed slug: lowercase alphanumeric
// tokens separated by single hyphens, no leading or trailing hyphen.
func Valid(s string) bool {
	return s != "" && s == Derive(s)
}
