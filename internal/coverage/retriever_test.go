package coverage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexatic/clause-engine/pkg/types/contract"
)

func digestPlaybook(anchors ...string) *contract.Playbook {
	return &contract.Playbook{Key: "x", ClauseAnchors: anchors}
}

func TestBuildDigest_AnchorOrderPreserved(t *testing.T) {
	pb := digestPlaybook("return or destruction of materials", "definition of confidential information")
	clauses := []contract.Clause{
		{ID: "conf", Title: "Confidential Information", OriginalText: "Definition of confidential information disclosed under this agreement."},
		{ID: "return", Title: "Return of Materials", OriginalText: "Materials shall be returned or destroyed upon request without delay."},
	}

	digest := BuildDigest(pb, clauses, DigestOptions{})

	require.Len(t, digest, 2)
	assert.Equal(t, "return or destruction of materials", digest[0].Anchor)
	assert.Equal(t, "return", digest[0].ClauseID)
	assert.Equal(t, "definition of confidential information", digest[1].Anchor)
	assert.Equal(t, "conf", digest[1].ClauseID)
}

func TestBuildDigest_MaxPerAnchor(t *testing.T) {
	pb := digestPlaybook("confidential information handling")
	clauses := make([]contract.Clause, 0, 5)
	for i := 0; i < 5; i++ {
		clauses = append(clauses, contract.Clause{
			ID:           contract.Slugify("c" + strings.Repeat("x", i+1)),
			Title:        "Confidential Information",
			OriginalText: "Handling of confidential information is described here.",
		})
	}

	digest := BuildDigest(pb, clauses, DigestOptions{MaxPerAnchor: 2, MaxTotal: 10})

	assert.Len(t, digest, 2)
}

func TestBuildDigest_MaxTotalStopsSelection(t *testing.T) {
	pb := digestPlaybook("confidential information handling", "confidential information storage")
	clauses := []contract.Clause{
		{ID: "a", Title: "Confidential Information", OriginalText: "Handling and storage of confidential information."},
		{ID: "b", Title: "Confidential Information", OriginalText: "More handling and storage of confidential information."},
	}

	digest := BuildDigest(pb, clauses, DigestOptions{MaxPerAnchor: 2, MaxTotal: 3})

	// Both clauses match both anchors; the total cap ends selection mid-anchor.
	assert.Len(t, digest, 3)
}

func TestBuildDigest_NoMatches(t *testing.T) {
	pb := digestPlaybook("service levels and credits")
	clauses := []contract.Clause{
		{ID: "conf", Title: "Confidentiality", OriginalText: "Secrets stay secret."},
	}

	digest := BuildDigest(pb, clauses, DigestOptions{})

	assert.Empty(t, digest)
}

func TestBuildDigest_ZeroOptionsUseDefaults(t *testing.T) {
	opts := DigestOptions{}.withDefaults()

	assert.Equal(t, defaultMaxPerAnchor, opts.MaxPerAnchor)
	assert.Equal(t, defaultMaxTotal, opts.MaxTotal)
	assert.Equal(t, defaultExcerptLength, opts.ExcerptLength)
}

func TestTruncateExcerpt_ShortTextUnchanged(t *testing.T) {
	assert.Equal(t, "short clause", truncateExcerpt("short clause", 100))
}

func TestTruncateExcerpt_HeadAndTailSurvive(t *testing.T) {
	head := "OPENING OBLIGATION of the receiving party stated here. "
	filler := strings.Repeat("filler words in the middle. ", 30)
	tail := " CLOSING CARVE-OUT at the very end."
	text := head + filler + tail

	got := truncateExcerpt(text, 120)

	assert.LessOrEqual(t, len([]rune(got)), 120)
	assert.Contains(t, got, "OPENING OBLIGATION")
	assert.Contains(t, got, "very end.")
	assert.Contains(t, got, "…")
}

func TestBuildDigest_ExcerptTruncated(t *testing.T) {
	pb := digestPlaybook("confidential information")
	long := "Confidential information " + strings.Repeat("must be protected at all times ", 40)
	clauses := []contract.Clause{
		{ID: "conf", Title: "Confidentiality", OriginalText: long},
	}

	digest := BuildDigest(pb, clauses, DigestOptions{ExcerptLength: 80})

	require.Len(t, digest, 1)
	assert.LessOrEqual(t, len([]rune(digest[0].Excerpt)), 80)
}
