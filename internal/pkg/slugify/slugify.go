package slugify

import (
	"fmt"
	"hash/fnv"
	"strings"
	"unicode"
)

// accentFold maps common accented latin letters to their ASCII form so slugs
// stay readable for names like "Programação".
var accentFold = map[rune]rune{
	'á': 'a', 'à': 'a', 'ã': 'a', 'â': 'a', 'ä': 'a',
	'é': 'e', 'è': 'e', 'ê': 'e', 'ë': 'e',
	'í': 'i', 'ì': 'i', 'î': 'i', 'ï': 'i',
	'ó': 'o', 'ò': 'o', 'õ': 'o', 'ô': 'o', 'ö': 'o',
	'ú': 'u', 'ù': 'u', 'û': 'u', 'ü': 'u',
	'ç': 'c', 'ñ': 'n',
}

// Make derives a URL-safe slug from a display name: lowercase, accents folded,
// every run of non-alphanumeric characters collapsed into a single hyphen.
// Slugs are derived once at create time and never change afterwards.
// A non-empty name whose characters all fall outside ASCII gets a stable
// hash-based slug, so the result is never empty and distinct names stay
// distinct.
func Make(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	b.Grow(len(lowered))

	prevHyphen := true // suppress a leading hyphen
	for _, r := range lowered {
		if folded, ok := accentFold[r]; ok {
			r = folded
		}
		if unicode.IsLetter(r) && r < 128 || unicode.IsDigit(r) {
			b.WriteRune(r)
			prevHyphen = false
			continue
		}
		if !prevHyphen {
			b.WriteByte('-')
			prevHyphen = true
		}
	}

	slug := strings.TrimRight(b.String(), "-")
	if slug == "" && lowered != "" {
		h := fnv.New32a()
		h.Write([]byte(lowered))
		slug = fmt.Sprintf("x-%08x", h.Sum32())
	}

	return slug
}
