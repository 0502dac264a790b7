// Package document turns uploaded contract bytes into normalized plain text.
// The decoder understands the zip-packaged XML word-processing format and
// degrades through two byte-level fallbacks; it never fails for "no text
// found" — emptiness is a legitimate result the caller inspects.
package document

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// minPrintableRun is the minimum length of a printable-ASCII run the
	// last-resort scanner will emit as text.
	minPrintableRun = 15

	// Base64 content envelopes produced by the upload pipeline.
	envelopeDocx = "DOCX_FILE_BASE64:"
	envelopePDF  = "PDF_FILE_BASE64:"
)

var (
	paragraphRe = regexp.MustCompile(`(?s)<w:p(?:\s[^>]*)?>.*?</w:p>`)
	textRunRe   = regexp.MustCompile(`(?s)<w:t(?:\s[^>]*)?>(.*?)</w:t>`)
	numEntityRe = regexp.MustCompile(`&#x?[0-9a-fA-F]{1,6};`)
)

// DecodeEnvelope strips a base64 content envelope from inline content.
// It returns the decoded bytes, the format implied by the prefix ("docx" or
// "pdf"), and whether an envelope was present.  Content without an envelope
// is returned unchanged as plain text bytes.
func DecodeEnvelope(content string) (raw []byte, format string, enveloped bool, err error) {
	switch {
	case strings.HasPrefix(content, envelopeDocx):
		raw, err = base64.StdEncoding.DecodeString(strings.TrimPrefix(content, envelopeDocx))
		return raw, "docx", true, err
	case strings.HasPrefix(content, envelopePDF):
		raw, err = base64.StdEncoding.DecodeString(strings.TrimPrefix(content, envelopePDF))
		return raw, "pdf", true, err
	default:
		return []byte(content), "", false, nil
	}
}

// Decode extracts plain text from raw document bytes.  The extension hint
// selects the primary path; every path degrades to the byte-level scanners,
// so Decode never returns an error.  An empty result means the buffer held
// no recognizable text.
func Decode(raw []byte, extensionHint string) string {
	if len(raw) == 0 {
		return ""
	}
	hint := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(extensionHint)), ".")

	switch hint {
	case "docx", "doc":
		return decodeWordArchive(raw)
	case "txt", "md", "text":
		if utf8.Valid(raw) {
			return string(raw)
		}
		return scanPrintableRuns(raw)
	default:
		// PDF and unknown binary formats share the degraded path: markup runs
		// first (some converters embed them), printable runs last.
		if text := scanTextRuns(raw); text != "" {
			return text
		}
		return scanPrintableRuns(raw)
	}
}

// decodeWordArchive opens the zip container and extracts text from the
// document, header, footer, and footnote parts: main document first, the
// remainder in alphabetical order.  One output line per paragraph;
// paragraphs with no recognized text runs contribute nothing.
func decodeWordArchive(raw []byte) string {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		// Not a readable archive: scan the buffer directly for text-run
		// markup, then for printable runs.
		if text := scanTextRuns(raw); text != "" {
			return text
		}
		return scanPrintableRuns(raw)
	}

	var secondary []string
	parts := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		parts[f.Name] = f
		if isSecondaryPart(f.Name) {
			secondary = append(secondary, f.Name)
		}
	}
	sort.Strings(secondary)

	ordered := make([]string, 0, len(secondary)+1)
	if _, ok := parts["word/document.xml"]; ok {
		ordered = append(ordered, "word/document.xml")
	}
	ordered = append(ordered, secondary...)

	var lines []string
	for _, name := range ordered {
		data, err := readZipPart(parts[name])
		if err != nil {
			continue
		}
		lines = append(lines, paragraphLines(string(data))...)
	}
	if len(lines) == 0 {
		return scanPrintableRuns(raw)
	}
	return strings.Join(lines, "\n")
}

// isSecondaryPart reports whether a zip entry is a header, footer, or
// footnote part read after the main document.
func isSecondaryPart(name string) bool {
	if !strings.HasPrefix(name, "word/") || !strings.HasSuffix(name, ".xml") {
		return false
	}
	base := strings.TrimSuffix(strings.TrimPrefix(name, "word/"), ".xml")
	return strings.HasPrefix(base, "header") ||
		strings.HasPrefix(base, "footer") ||
		base == "footnotes" || base == "endnotes"
}

func readZipPart(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// paragraphLines emits one line per paragraph element that contains at least
// one recognized text run.
func paragraphLines(xmlPart string) []string {
	var lines []string
	for _, para := range paragraphRe.FindAllString(xmlPart, -1) {
		runs := textRunRe.FindAllStringSubmatch(para, -1)
		if len(runs) == 0 {
			continue
		}
		var b strings.Builder
		for _, m := range runs {
			b.WriteString(unescapeXML(m[1]))
		}
		line := strings.TrimSpace(b.String())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// scanTextRuns is the first fallback: decode the buffer as UTF-8 and scan for
// text-run markup directly, ignoring paragraph structure.
func scanTextRuns(raw []byte) string {
	text := string(raw)
	matches := textRunRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return ""
	}
	lines := make([]string, 0, len(matches))
	for _, m := range matches {
		if t := strings.TrimSpace(unescapeXML(m[1])); t != "" {
			lines = append(lines, t)
		}
	}
	return strings.Join(lines, "\n")
}

// scanPrintableRuns is the last resort: collect printable ASCII runs of at
// least minPrintableRun characters, skipping archive and markup artifacts.
func scanPrintableRuns(raw []byte) string {
	var lines []string
	var run []byte
	flush := func() {
		if len(run) >= minPrintableRun && !isArtifactRun(string(run)) {
			lines = append(lines, strings.TrimSpace(string(run)))
		}
		run = run[:0]
	}
	for _, b := range raw {
		if b >= 0x20 && b <= 0x7e {
			run = append(run, b)
			continue
		}
		flush()
	}
	flush()
	return strings.Join(lines, "\n")
}

// isArtifactRun filters printable runs that are clearly zip directory entries
// or markup fragments rather than document prose.
func isArtifactRun(s string) bool {
	lower := strings.ToLower(s)
	for _, marker := range []string{
		"word/", "_rels", "docprops", "[content_types]", "xml", "theme", "<?", "</",
	} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return strings.HasPrefix(s, "PK")
}

// unescapeXML resolves the predefined XML entities plus numeric character
// references inside extracted text runs.
func unescapeXML(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	s = numEntityRe.ReplaceAllStringFunc(s, func(ent string) string {
		body := strings.TrimSuffix(strings.TrimPrefix(ent, "&#"), ";")
		base := 10
		if strings.HasPrefix(body, "x") || strings.HasPrefix(body, "X") {
			base = 16
			body = body[1:]
		}
		n, err := strconv.ParseInt(body, base, 32)
		if err != nil || n <= 0 {
			return ""
		}
		return string(rune(n))
	})
	replacer := strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&apos;", "'",
		"&amp;", "&",
	)
	return replacer.Replace(s)
}
