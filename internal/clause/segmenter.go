// Package clause implements the deterministic heart of the engine: heuristic
// segmentation of normalized contract text into heading+body segments, and
// rule-based classification of each segment.  Both are pure functions of
// their inputs, so the same document always yields the same clause list.
//
// A single shared implementation serves every caller; earlier versions of the
// product carried a second, drifting copy inside a debug tool.
package clause

import (
	"regexp"
	"strings"
)

// Segment is an intermediate heading+body unit emitted by the segmenter.
type Segment struct {
	// Heading is the detected section title ("CONFIDENTIALITY", "Preamble").
	Heading string

	// Section is the numbering label recovered from the heading marker
	// ("3", "12.4"), empty when the heading carried no marker.
	Section string

	// Text is the accumulated body, lines joined with \n.  Never empty:
	// segments without a body are not emitted.
	Text string

	// References lists cross-references found in the body ("Section 12.1").
	References []string

	// Ordinal is the 0-based emission position within the document.
	Ordinal int
}

const (
	// maxHeadingLen bounds heading candidates: real section titles are short.
	maxHeadingLen = 140

	// implicitHeading owns leading lines that appear before any detected
	// heading.
	implicitHeading = "Preamble"
)

var (
	keywordHeadingRe  = regexp.MustCompile(`^(?i:Section|Article|Clause|Appendix|Schedule|Exhibit)\s+(\d+(?:\.\d+)*|[IVXLC]+)\b[.:)]?\s*(.*)$`)
	numberedHeadingRe = regexp.MustCompile(`^(\d+(?:\.\d+)*)[.)]\s+(.*)$`)
	allCapsRe         = regexp.MustCompile(`^[A-Z][A-Z0-9 \-&/,().'’]*$`)
	partyLabelRe      = regexp.MustCompile(`^(?i:Party|Company)\s+(?:[A-Z0-9]|One|Two|Three|\d+)$`)
	triggerVerbRe     = regexp.MustCompile(`\b(?:shall|means|include|includes|including)\b`)
	crossRefRe        = regexp.MustCompile(`(?i)\b(?:Section|Clause|Article)\s+\d+(?:\.\d+)*`)
)

// headingStopWords are bare tokens that never stand alone as a section title;
// a line consisting of exactly one of them is body text.
var headingStopWords = map[string]bool{
	"and": true, "or": true, "the": true, "of": true, "to": true,
	"in": true, "by": true, "for": true, "with": true, "a": true,
	"an": true, "as": true, "at": true, "on": true,
}

// Split divides normalized text into ordered heading+body segments in a
// single pass with no backtracking.  Heading-shaped lines matching the
// stop-word or inline-fragment exclusions are treated as body text, which
// keeps capitalized party names from shredding the document into spurious
// one-line clauses.
func Split(text string) []Segment {
	var segments []Segment

	var (
		heading string
		section string
		buffer  []string
		open    bool
	)

	flush := func() {
		if !open {
			return
		}
		body := strings.TrimSpace(strings.Join(buffer, "\n"))
		if heading != "" && body != "" {
			segments = append(segments, Segment{
				Heading:    heading,
				Section:    section,
				Text:       body,
				References: findReferences(body),
				Ordinal:    len(segments),
			})
		}
		heading, section, buffer, open = "", "", nil, false
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		head, sec, isHeading := headingCandidate(line)
		if isHeading && !excludedAsHeading(line) {
			if prefix, seed, split := splitInlineBody(head); split {
				flush()
				heading, section, open = prefix, sec, true
				buffer = append(buffer, seed)
				continue
			}
			flush()
			heading, section, open = head, sec, true
			continue
		}

		if !open {
			heading, section, open = implicitHeading, "", true
		}
		buffer = append(buffer, line)
	}
	flush()

	return segments
}

// headingCandidate reports whether a line looks like a section heading and
// returns the heading text plus any numbering label.
func headingCandidate(line string) (heading, section string, ok bool) {
	// Numbered markers may exceed the short-line bound: "12.1 The Receiving
	// Party shall ..." is a clause start and gets trigger-split below.
	for _, re := range []*regexp.Regexp{keywordHeadingRe, numberedHeadingRe} {
		if m := re.FindStringSubmatch(line); m != nil {
			if strings.TrimSpace(m[2]) == "" {
				// A bare number is a list marker, not a title.
				return "", "", false
			}
			return line, m[1], true
		}
	}

	if len(line) > maxHeadingLen {
		return "", "", false
	}

	if allCapsRe.MatchString(line) && strings.ContainsAny(line, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		return line, "", true
	}

	if isTitleCaseHeading(line) {
		return line, "", true
	}

	return "", "", false
}

// isTitleCaseHeading accepts short title-case lines without sentence-ending
// punctuation: "Governing Law and Jurisdiction".
func isTitleCaseHeading(line string) bool {
	if strings.HasSuffix(line, ".") || strings.HasSuffix(line, ";") {
		return false
	}
	words := strings.Fields(line)
	if len(words) == 0 || len(words) > 10 {
		return false
	}
	if !startsUpper(words[0]) {
		return false
	}
	capitalized := 0
	for _, w := range words {
		if startsUpper(w) || headingStopWords[strings.ToLower(w)] {
			capitalized++
		}
	}
	return capitalized == len(words)
}

func startsUpper(w string) bool {
	r := rune(w[0])
	return r >= 'A' && r <= 'Z'
}

// excludedAsHeading applies the stop/fragment exclusions: a bare stop-word,
// a line ending in a comma (mid-sentence fragment), or a bare "Party N" /
// "Company N" label, which is a mid-sentence reference rather than a title.
func excludedAsHeading(line string) bool {
	if strings.HasSuffix(line, ",") {
		return true
	}
	if headingStopWords[strings.ToLower(line)] {
		return true
	}
	return partyLabelRe.MatchString(line)
}

// splitInlineBody handles heading-shaped lines that carry a clause body after
// a trigger verb: the prefix becomes the heading and the remainder, starting
// at the trigger verb, seeds the new segment's buffer.
func splitInlineBody(head string) (prefix, seed string, ok bool) {
	loc := triggerVerbRe.FindStringIndex(head)
	if loc == nil || loc[0] == 0 {
		return "", "", false
	}
	prefix = strings.TrimRight(strings.TrimSpace(head[:loc[0]]), ".,:;")
	seed = strings.TrimSpace(head[loc[0]:])
	if prefix == "" || seed == "" {
		return "", "", false
	}
	return prefix, seed, true
}

// findReferences collects cross-references mentioned in a clause body.
// Duplicates are dropped, first-mention order preserved.
func findReferences(body string) []string {
	matches := crossRefRe.FindAllString(body, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	var refs []string
	for _, m := range matches {
		key := strings.ToLower(m)
		if seen[key] {
			continue
		}
		seen[key] = true
		refs = append(refs, m)
	}
	return refs
}
