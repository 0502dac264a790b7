package coverage

import (
	"strings"

	"github.com/lexatic/clause-engine/pkg/types/contract"
)

// DigestOptions bounds the size of a context digest.  Zero values fall back
// to the package defaults so a zero-value options struct is usable.
type DigestOptions struct {
	// MaxPerAnchor caps how many clauses a single anchor may contribute.
	MaxPerAnchor int

	// MaxTotal caps the digest's total clause count across all anchors.
	MaxTotal int

	// ExcerptLength caps each excerpt's rune count; longer clause text is
	// truncated head-and-tail around an ellipsis.
	ExcerptLength int
}

const (
	defaultMaxPerAnchor  = 3
	defaultMaxTotal      = 12
	defaultExcerptLength = 320
)

func (o DigestOptions) withDefaults() DigestOptions {
	if o.MaxPerAnchor <= 0 {
		o.MaxPerAnchor = defaultMaxPerAnchor
	}
	if o.MaxTotal <= 0 {
		o.MaxTotal = defaultMaxTotal
	}
	if o.ExcerptLength <= 0 {
		o.ExcerptLength = defaultExcerptLength
	}
	return o
}

// DigestEntry is one excerpt selected for an anchor.
type DigestEntry struct {
	Anchor   string `json:"anchor"`
	ClauseID string `json:"clauseId"`
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
}

// BuildDigest selects bounded clause excerpts relevant to a playbook's
// anchors, in anchor declaration order.  Each anchor contributes its matching
// clauses in clause order up to MaxPerAnchor; selection stops entirely once
// MaxTotal entries are collected.  A clause matched by two anchors appears
// once per anchor, each charged against the caps.
func BuildDigest(pb *contract.Playbook, clauses []contract.Clause, opts DigestOptions) []DigestEntry {
	opts = opts.withDefaults()
	idx := indexClauses(clauses)

	digest := make([]DigestEntry, 0, opts.MaxTotal)
	for _, anchor := range pb.ClauseAnchors {
		taken := 0
		for i, c := range idx.clauses {
			if taken >= opts.MaxPerAnchor {
				break
			}
			if !phraseMatchesSet(anchor, idx.tokens[i]) {
				continue
			}
			digest = append(digest, DigestEntry{
				Anchor:   anchor,
				ClauseID: c.ID,
				Title:    c.Title,
				Excerpt:  truncateExcerpt(c.OriginalText, opts.ExcerptLength),
			})
			taken++
			if len(digest) >= opts.MaxTotal {
				return digest
			}
		}
	}
	return digest
}

// truncateExcerpt keeps roughly the first 60% and last 40% of an over-long
// text joined by an ellipsis, so both the opening obligation and the closing
// carve-outs of a clause survive truncation.
func truncateExcerpt(text string, limit int) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	const ellipsis = " … "
	budget := limit - len([]rune(ellipsis))
	if budget < 2 {
		return string(runes[:limit])
	}
	head := budget * 6 / 10
	tail := budget - head
	return strings.TrimSpace(string(runes[:head])) + ellipsis + strings.TrimSpace(string(runes[len(runes)-tail:]))
}
