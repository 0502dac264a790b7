package coverage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignificantTokens(t *testing.T) {
	tokens := significantTokens("The Processor shall notify the Controller without undue delay!")

	assert.Equal(t, []string{"processor", "notify", "controller", "without", "undue", "delay"}, tokens)
}

func TestSignificantTokens_DropsShortAndStopWords(t *testing.T) {
	assert.Empty(t, significantTokens("to be or not to be"))
	assert.Empty(t, significantTokens(""))
	assert.Equal(t, []string{"gdpr"}, significantTokens("the GDPR"))
}

func TestRequiredOverlap(t *testing.T) {
	tests := []struct {
		tokens []string
		want   int
	}{
		{[]string{"one"}, 1},
		{[]string{"one", "two"}, 1},
		{[]string{"one", "two", "three"}, 2},
		{[]string{"one", "two", "three", "four"}, 2},
		{[]string{"one", "two", "three", "four", "five"}, 3},
		{[]string{"a", "b", "c", "d", "e", "f", "g", "h"}, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, requiredOverlap(tt.tokens), "n=%d", len(tt.tokens))
	}
}

func TestPhraseMatchesSet(t *testing.T) {
	candidate := tokenSet("The receiving party shall keep all confidential information strictly secret at all times.")

	assert.True(t, phraseMatchesSet("definition of confidential information", candidate))
	assert.True(t, phraseMatchesSet("keep confidential information secret", candidate))
	assert.False(t, phraseMatchesSet("personal data breach notification", candidate))
}

func TestPhraseMatchesSet_EmptyPhraseMatchesNothing(t *testing.T) {
	candidate := tokenSet("anything at all here")

	assert.False(t, phraseMatchesSet("", candidate))
	assert.False(t, phraseMatchesSet("of the to", candidate))
}

func TestPhraseMatchesSet_DuplicateRequirementTokensCountOnce(t *testing.T) {
	// "data data data protection" has two unique significant tokens, so the
	// threshold is 1 shared unique token, not satisfied by repetition alone.
	candidate := tokenSet("unrelated clause about payment schedules")

	assert.False(t, phraseMatchesSet("data data data protection", candidate))
}
