package document

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	// Metadata islands embedded by PDF/word-processor exporters.  Non-greedy
	// so adjacent prose between two islands survives.
	xmpPacketRe = regexp.MustCompile(`(?s)<\?xpacket.*?\?>`)
	xmpMetaRe   = regexp.MustCompile(`(?s)<x:xmpmeta.*?</x:xmpmeta>`)
	rdfBlockRe  = regexp.MustCompile(`(?s)<rdf:RDF.*?</rdf:RDF>`)

	markupTagRe   = regexp.MustCompile(`<[^>]+>`)
	numEscapeRe   = regexp.MustCompile(`&#x?[0-9a-fA-F]{1,6};`)
	spaceRunRe    = regexp.MustCompile(`[ \t]+`)
	blankLinesRe  = regexp.MustCompile(`\n{3,}`)
)

// Normalize converts decoder output (or caller-supplied text) into the
// metadata-free, \n-normalized form every downstream component consumes.
// Normalize is idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = norm.NFC.String(text)

	text = xmpPacketRe.ReplaceAllString(text, " ")
	text = xmpMetaRe.ReplaceAllString(text, " ")
	text = rdfBlockRe.ReplaceAllString(text, " ")
	text = markupTagRe.ReplaceAllString(text, " ")
	text = numEscapeRe.ReplaceAllString(text, "")

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	text = stripNonPrintable(text)
	text = spaceRunRe.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")

	text = blankLinesRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// stripNonPrintable removes control characters (except newline and tab) and
// non-printable non-ASCII runes such as zero-width joiners and replacement
// characters, keeping printable accented text intact.
func stripNonPrintable(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\n' || r == '\t':
			b.WriteRune(r)
		case r == 0xFFFD:
			// dropped
		case unicode.IsControl(r), unicode.Is(unicode.Cf, r):
			// dropped
		case r > unicode.MaxASCII && !unicode.IsPrint(r):
			// dropped
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
