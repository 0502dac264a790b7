// Package coverage matches extracted clauses against a playbook's anchors and
// critical clauses, computes the coverage score, and builds bounded excerpt
// digests for downstream review prompts.  Matching is lexical and
// deterministic: both sides are normalized and compared on shared significant
// tokens, with the first clause in declared order crossing the threshold
// winning.
package coverage

import "strings"

// stopWords are ignored when extracting significant tokens from requirement
// phrases and clause text.
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "any": true, "are": true, "as": true,
	"at": true, "be": true, "by": true, "for": true, "from": true, "has": true,
	"have": true, "in": true, "is": true, "it": true, "its": true, "may": true,
	"not": true, "of": true, "on": true, "or": true, "shall": true, "such": true,
	"that": true, "the": true, "this": true, "to": true, "under": true,
	"upon": true, "was": true, "will": true, "with": true,
}

// maxRequiredOverlap caps the shared-token requirement so long requirement
// phrases remain matchable against tersely drafted clauses.
const maxRequiredOverlap = 3

// significantTokens lowercases a phrase, strips punctuation, and returns its
// non-stopword tokens of three or more characters.
func significantTokens(phrase string) []string {
	var tokens []string
	var b strings.Builder
	flush := func() {
		if b.Len() >= 3 {
			tok := b.String()
			if !stopWords[tok] {
				tokens = append(tokens, tok)
			}
		}
		b.Reset()
	}
	for _, r := range strings.ToLower(phrase) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	return tokens
}

// tokenSet builds a membership set of a text's significant tokens.
func tokenSet(text string) map[string]bool {
	tokens := significantTokens(text)
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}

// requiredOverlap derives the shared-token threshold for a requirement
// phrase: at least half of its significant tokens, never fewer than one and
// never more than maxRequiredOverlap.
func requiredOverlap(requirementTokens []string) int {
	need := (len(requirementTokens) + 1) / 2
	if need < 1 {
		need = 1
	}
	if need > maxRequiredOverlap {
		need = maxRequiredOverlap
	}
	return need
}

// phraseMatchesSet reports whether a requirement phrase is satisfied by a
// candidate token set.  A phrase with no significant tokens matches nothing.
func phraseMatchesSet(phrase string, candidate map[string]bool) bool {
	reqTokens := significantTokens(phrase)
	if len(reqTokens) == 0 {
		return false
	}
	need := requiredOverlap(reqTokens)
	shared := 0
	seen := make(map[string]bool, len(reqTokens))
	for _, t := range reqTokens {
		if seen[t] {
			continue
		}
		seen[t] = true
		if candidate[t] {
			shared++
			if shared >= need {
				return true
			}
		}
	}
	return false
}
