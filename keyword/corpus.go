package keyword

// Severity band assigned to a matched term. Bands are assigned post-match
// based on the normalized term, not on which list it came from.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityExtreme
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityExtreme:
		return "extreme"
	default:
		return "unknown"
	}
}

// Built-in corpus, as slugified terms. Covers common English, Spanish,
// French, German, and Russian (transliterated) profanity. The extreme band
// (slurs, hate speech) is intentionally not kept in the source tree as
// plaintext; operators load it at startup via Matcher.AddExtremeTerms,
// typically from the same JSON sets file that feeds the setstore.

var highSeverityTerms = []string{
	// en
	"fuck", "motherfucker", "cunt", "cocksucker", "whore", "slut",
	// es
	"puta", "joder", "mierda", "coño",
	// fr
	"putain", "salope", "encule",
	// de
	"fotze", "hurensohn", "scheisse",
	// ru (transliterated)
	"blyad", "pizdec", "suka", "khuy",
}

var mediumSeverityTerms = []string{
	// en
	"shit", "bitch", "asshole", "bastard", "dick", "pussy", "wanker",
	// es
	"cabron", "pendejo", "gilipollas",
	// fr
	"merde", "connard",
	// de
	"arschloch", "schlampe",
	// ru (transliterated)
	"mudak", "svoloch",
}

var lowSeverityTerms = []string{
	"damn", "crap", "piss", "douche", "jerk", "twat",
	"idiota", "imbecile", "depp", "durak",
}

func buildTermSet(terms []string) map[string]bool {
	out := make(map[string]bool, len(terms))
	for _, t := range terms {
		out[Slugify(t)] = true
	}
	return out
}
