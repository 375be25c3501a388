package customfield

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize turns a human-entered name into a storage-safe token:
// diacritics are folded to ASCII, letters lowercased, and every run of
// characters outside [a-z0-9] collapses to a single "_". Leading and
// trailing separators are dropped. Normalize(Normalize(s)) == Normalize(s).
func Normalize(name string) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		name,
	)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingSep := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}
