package keyword

import (
	"strings"

	"github.com/spaolacci/murmur3"
)

// Result of evaluating one text body against the configured word sets.
type Match struct {
	Found bool
	// the normalized term which matched (for extreme terms matched by hash,
	// the matching folded substring)
	Term     string
	Severity Severity
	// true when the term was only caught by the obfuscation pass
	Obfuscated bool
}

// Per-evaluation word set configuration, as supplied by the caller (guild
// config). Word lists are slugified internally, so entries may be written
// with arbitrary case or punctuation.
type Options struct {
	CustomWords  []string
	IgnoredWords []string
	UseBuiltIn   bool
}

// Matcher evaluates message text against the built-in corpus and
// caller-supplied word sets. It does a literal whole-word pass first, then
// an obfuscation pass over folded text to catch spaced-out or substituted
// spellings.
//
// A Matcher is immutable once serving traffic: AddExtremeTerms must only be
// called during startup.
type Matcher struct {
	high   map[string]bool
	medium map[string]bool
	low    map[string]bool

	// extreme terms are matched by murmur3 hash of the collapsed slug, so
	// the term list itself never appears in memory dumps or source
	extremeHashes  map[uint64]bool
	extremeLengths map[int]bool
}

func NewMatcher() *Matcher {
	return &Matcher{
		high:           buildTermSet(highSeverityTerms),
		medium:         buildTermSet(mediumSeverityTerms),
		low:            buildTermSet(lowSeverityTerms),
		extremeHashes:  make(map[uint64]bool),
		extremeLengths: make(map[int]bool),
	}
}

// AddExtremeTerms registers slur/hate-speech terms in the extreme band.
// Terms are hashed immediately and the plaintext discarded.
func (m *Matcher) AddExtremeTerms(terms ...string) {
	for _, t := range terms {
		collapsed := CollapseRuns(Slugify(t))
		if collapsed == "" {
			continue
		}
		m.extremeHashes[murmur3.Sum64([]byte(collapsed))] = true
		m.extremeLengths[len(collapsed)] = true
	}
}

func (m *Matcher) isExtreme(tok string) bool {
	if len(m.extremeHashes) == 0 {
		return false
	}
	return m.extremeHashes[murmur3.Sum64([]byte(CollapseRuns(tok)))]
}

// severityOf classifies an already-matched slug. Terms not present in any
// band default to low.
func (m *Matcher) severityOf(slug string) Severity {
	switch {
	case m.isExtreme(slug):
		return SeverityExtreme
	case m.high[slug]:
		return SeverityHigh
	case m.medium[slug]:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// Evaluate runs both matching passes. Ignored words always win: an entry in
// IgnoredWords suppresses a match even if the same term also appears in the
// custom list or the built-in corpus. No match is not an error.
func (m *Matcher) Evaluate(text string, opts Options) Match {
	ignored := make(map[string]bool, len(opts.IgnoredWords))
	for _, w := range opts.IgnoredWords {
		ignored[Slugify(w)] = true
	}
	custom := make(map[string]bool, len(opts.CustomWords))
	var customPhrases []string
	for _, w := range opts.CustomWords {
		toks := TokenizeText(w)
		if len(toks) > 1 {
			customPhrases = append(customPhrases, strings.Join(toks, " "))
			continue
		}
		custom[Slugify(w)] = true
	}

	tokens := TokenizeText(text)

	// pass 1: literal whole-word/phrase matching
	for _, tok := range tokens {
		// de-pluralize
		deplural := strings.TrimSuffix(tok, "s")
		if ignored[tok] || ignored[deplural] {
			continue
		}
		for _, cand := range []string{tok, deplural} {
			if m.isExtreme(cand) {
				return Match{Found: true, Term: cand, Severity: SeverityExtreme}
			}
			if custom[cand] {
				return Match{Found: true, Term: cand, Severity: m.severityOf(cand)}
			}
			if opts.UseBuiltIn && (m.high[cand] || m.medium[cand] || m.low[cand]) {
				return Match{Found: true, Term: cand, Severity: m.severityOf(cand)}
			}
		}
	}
	if len(customPhrases) > 0 {
		joined := " " + strings.Join(tokens, " ") + " "
		for _, phrase := range customPhrases {
			if ignored[Slugify(phrase)] {
				continue
			}
			if strings.Contains(joined, " "+phrase+" ") {
				return Match{Found: true, Term: phrase, Severity: m.severityOf(Slugify(phrase))}
			}
		}
	}

	// pass 2: obfuscation folding. Each whitespace-separated fragment is
	// folded (leetspeak, separator stripping, repeat collapsing) and
	// compared whole against the word sets, so a term hidden inside a
	// longer legitimate word still does not match. Runs of short fragments
	// ("f u c k", "fu ck") are additionally concatenated and checked by
	// containment, since those boundaries were put there to defeat the
	// literal pass.
	var whole []string
	var runs []string
	var run strings.Builder
	flushRun := func() {
		if run.Len() >= 4 {
			runs = append(runs, run.String())
		}
		run.Reset()
	}
	for _, raw := range strings.Fields(text) {
		frag := CollapseRuns(FoldObfuscation(raw))
		if frag == "" {
			continue
		}
		whole = append(whole, frag)
		if len(frag) <= 3 {
			run.WriteString(frag)
		} else {
			flushRun()
		}
	}
	flushRun()

	matchFolded := func(cand string, containment bool) *Match {
		if m.foldedExtremeHit(cand, containment) {
			return &Match{Found: true, Term: cand, Severity: SeverityExtreme, Obfuscated: true}
		}
		for term := range custom {
			if m.foldedTermHit(cand, term, containment, ignored) {
				return &Match{Found: true, Term: term, Severity: m.severityOf(term), Obfuscated: true}
			}
		}
		if opts.UseBuiltIn {
			for _, band := range []struct {
				set map[string]bool
				sev Severity
			}{
				{m.high, SeverityHigh},
				{m.medium, SeverityMedium},
				{m.low, SeverityLow},
			} {
				for term := range band.set {
					if m.foldedTermHit(cand, term, containment, ignored) {
						return &Match{Found: true, Term: term, Severity: band.sev, Obfuscated: true}
					}
				}
			}
		}
		return nil
	}

	for _, cand := range whole {
		if ignored[cand] {
			continue
		}
		if hit := matchFolded(cand, false); hit != nil {
			return *hit
		}
	}
	for _, cand := range runs {
		if hit := matchFolded(cand, true); hit != nil {
			return *hit
		}
	}
	return Match{}
}

// foldedTermHit compares a folded candidate fragment against a single
// configured term. Whole fragments must match exactly (modulo repeat
// collapsing and pluralization); concatenated short-fragment runs match by
// containment, guarded to terms of four or more letters.
func (m *Matcher) foldedTermHit(cand, term string, containment bool, ignored map[string]bool) bool {
	if ignored[term] {
		return false
	}
	collapsed := CollapseRuns(term)
	if containment {
		if len(term) < 4 {
			return false
		}
		return strings.Contains(cand, collapsed)
	}
	return cand == collapsed || strings.TrimSuffix(cand, "s") == collapsed
}

// foldedExtremeHit checks a folded candidate against the hashed extreme
// set: exact (and de-pluralized) hash equality for whole fragments, or a
// sliding substring hash scan for concatenated runs.
func (m *Matcher) foldedExtremeHit(cand string, containment bool) bool {
	if len(m.extremeHashes) == 0 {
		return false
	}
	if !containment {
		return m.extremeHashes[murmur3.Sum64([]byte(cand))] ||
			m.extremeHashes[murmur3.Sum64([]byte(strings.TrimSuffix(cand, "s")))]
	}
	for l := range m.extremeLengths {
		if l > len(cand) {
			continue
		}
		for i := 0; i+l <= len(cand); i++ {
			if m.extremeHashes[murmur3.Sum64([]byte(cand[i:i+l]))] {
				return true
			}
		}
	}
	return false
}
