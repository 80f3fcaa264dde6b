package span

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize applies NFKC normalization and collapses runs of whitespace to a
// single space. PDF text layers routinely emit compatibility forms (ligatures,
// fullwidth digits) and fragmented spacing; all downstream text comparison
// assumes this canonical form.
func Normalize(text string) string {
	text = norm.NFKC.String(strings.TrimSpace(text))
	if text == "" {
		return ""
	}

	var sb strings.Builder
	sb.Grow(len(text))
	inSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if inSpace && sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		inSpace = false
		sb.WriteRune(r)
	}
	return sb.String()
}
