package span

import "unicode"

// NonASCIIRatio returns the fraction of characters in text that fall outside
// the ASCII range, ignoring whitespace. Several structural heuristics
// (title-case, all-caps detection) are meaningless for scripts without case,
// so the scorer uses this ratio to decide when to apply its fairness
// adjustment instead.
func NonASCIIRatio(text string) float64 {
	total := 0
	nonASCII := 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if r > 127 {
			nonASCII++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(nonASCII) / float64(total)
}

// IsTitleCase reports whether every word that starts with a cased letter
// starts with an uppercase one. Words without cased letters (digits,
// uncased scripts, punctuation) are ignored, so "1. Introduction" is
// title case and a CJK run is neither title case nor its opposite.
func IsTitleCase(text string) bool {
	casedWords := 0
	for _, word := range fieldsOf(text) {
		r := firstCasedRune(word)
		if r == 0 {
			continue
		}
		casedWords++
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return casedWords > 0
}

// IsAllCaps reports whether the text's cased letters are at least 90%
// uppercase, requiring a minimum of three cased letters so that acronym
// fragments and uncased scripts do not qualify.
func IsAllCaps(text string) bool {
	upper := 0
	lower := 0
	for _, r := range text {
		switch {
		case unicode.IsUpper(r):
			upper++
		case unicode.IsLower(r):
			lower++
		}
	}
	if upper+lower < 3 {
		return false
	}
	return lower == 0 || float64(upper)/float64(upper+lower) > 0.9
}

// firstCasedRune returns the first rune of s that is upper- or lowercase,
// or 0 if none exists.
func firstCasedRune(s string) rune {
	for _, r := range s {
		if unicode.IsUpper(r) || unicode.IsLower(r) {
			return r
		}
	}
	return 0
}

// fieldsOf splits on whitespace without allocating for the common
// single-word case.
func fieldsOf(text string) []string {
	var fields []string
	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				fields = append(fields, text[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		fields = append(fields, text[start:])
	}
	return fields
}
