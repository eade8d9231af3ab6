package keyword

import (
	"strings"
	"unicode"
)

// substitutions commonly used to sneak words past a literal match
var leetTable = map[rune]rune{
	'0': 'o',
	'1': 'i',
	'3': 'e',
	'4': 'a',
	'5': 's',
	'7': 't',
	'8': 'b',
	'@': 'a',
	'$': 's',
	'!': 'i',
}

// FoldObfuscation rewrites text in to a canonical "bypass-resistant" form:
// lower-case, leetspeak substitutions applied, and every non-letter
// character (separators, punctuation, whitespace) removed. The result is a
// bare letter string suitable for containment matching against folded terms.
//
// "f.u c-k" and "fu<k" both fold to strings containing "fuck"; "W0rd" folds
// to "word".
func FoldObfuscation(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if sub, ok := leetTable[r]; ok {
			b.WriteRune(sub)
			continue
		}
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CollapseRuns reduces every run of a repeated letter to a single
// occurrence ("fuuuuck" becomes "fuck", "aaabbb" becomes "ab"). Matching is
// done with both term and candidate collapsed, so legitimate double letters
// in terms still line up.
func CollapseRuns(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	var last rune = -1
	for _, r := range s {
		if r == last {
			continue
		}
		b.WriteRune(r)
		last = r
	}
	return b.String()
}

// NormalizeObfuscated is the full second-pass normalization: leetspeak
// folding, separator stripping, then repeat collapsing.
func NormalizeObfuscated(text string) string {
	return CollapseRuns(FoldObfuscation(text))
}
