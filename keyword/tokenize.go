package keyword

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonTokenChars = regexp.MustCompile(`[^\pL\pN\s]+`)

// Splits free-form message text in to tokens, including lower-case,
// unicode normalization, and some unicode folding.
//
// The intent is for this to work similarly to an NLP tokenizer, as might be
// used in a fulltext search engine, and enable fast matching of tokens
// against configured word lists.
func TokenizeText(text string) []string {
	// the transform chain carries per-call state, so it must be constructed
	// on every call to avoid a race
	normFunc := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	split := strings.ToLower(nonTokenChars.ReplaceAllString(text, " "))
	folded, _, err := transform.String(normFunc, split)
	if err != nil {
		slog.Warn("unicode normalization error", "err", err)
		folded = split
	}
	return strings.Fields(folded)
}
