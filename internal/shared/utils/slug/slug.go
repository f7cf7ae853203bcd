// Package slug renders URL-safe identifiers from human titles.
package slug

import (
	"strings"
	"unicode"
)

// Make lowercases the input, collapses runs of non-alphanumerics into
// single hyphens, and trims leading/trailing hyphens.
func Make(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// IsValid reports whether s is already in slug form.
func IsValid(s string) bool {
	return s != "" && s == Make(s)
}
