// Package region maps free-text governing-law and jurisdiction strings to a
// canonical region code and the jurisdiction-specific vocabulary (currency,
// tax term, data-protection-law names) substituted into playbook guidance.
// The term table is immutable, so resolution is a pure function; callers
// resolve once per report, never per clause.
package region

import (
	"strings"

	"github.com/lexatic/clause-engine/pkg/types/contract"
)

// Resolve maps the supplied governing-law and jurisdiction text to a region
// context.  When nothing matches — including empty input — the returned
// context has an empty RegionKey and carries generic vocabulary so guidance
// substitution still produces readable text.
func Resolve(governingLaw, jurisdiction string) *contract.RegionContext {
	input := normalizeInput(governingLaw + " " + jurisdiction)
	if input == "" {
		return genericContext()
	}

	tokens := tokenSet(input)
	// Pad with spaces so multi-word substring matches respect word edges.
	padded := " " + input + " "

	for _, e := range regionTable {
		for _, term := range e.Terms {
			if matchTerm(term, padded, tokens) {
				return contextFor(&e)
			}
		}
	}
	return genericContext()
}

// ResolveKey returns only the canonical region code, with ok=false when the
// input resolved to nothing.
func ResolveKey(text string) (string, bool) {
	rc := Resolve(text, "")
	return rc.RegionKey, rc.RegionKey != ""
}

// matchTerm applies the two matching modes: multi-word terms match as
// substrings of the normalized input, single-word terms must equal a whole
// token.  The token rule prevents short country fragments from matching
// inside unrelated prose.
func matchTerm(term, padded string, tokens map[string]bool) bool {
	if strings.Contains(term, " ") {
		return strings.Contains(padded, " "+term+" ")
	}
	return tokens[term]
}

// normalizeInput lowercases and maps every non-alphanumeric rune to a space,
// collapsing runs.
func normalizeInput(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastSpace := true
	for _, r := range strings.ToLower(s) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if isAlnum {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			b.WriteByte(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

func tokenSet(input string) map[string]bool {
	fields := strings.Fields(input)
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}

func contextFor(e *entry) *contract.RegionContext {
	return &contract.RegionContext{
		RegionKey:              e.Key,
		Currency:               e.Currency,
		TaxTerm:                e.TaxTerm,
		DataProtectionLawLong:  e.DataProtectionLawLong,
		DataProtectionLawShort: e.DataProtectionLawShort,
		CountryName:            e.CountryName,
		FallbackRegions:        append([]string(nil), e.Fallbacks...),
	}
}

// genericContext is returned when no governing law is supplied or nothing in
// the table matches: region unresolved, vocabulary generic.
func genericContext() *contract.RegionContext {
	return &contract.RegionContext{
		Currency:               "",
		TaxTerm:                "applicable taxes",
		DataProtectionLawLong:  "applicable data protection law",
		DataProtectionLawShort: "applicable data protection law",
		CountryName:            "the relevant jurisdiction",
		FallbackRegions:        []string{"global"},
	}
}
