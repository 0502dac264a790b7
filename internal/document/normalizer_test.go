package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"plain text",
		"CONFIDENTIALITY\r\nThe parties   shall keep\tsecrets.\r\r\n\n\nNext line",
		"<x:xmpmeta>junk</x:xmpmeta>Recitals<rdf:RDF>more junk</rdf:RDF>",
		"café résumé — naïve",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "Normalize not idempotent for %q", in)
	}
}

func TestNormalize_StripsMetadataIslands(t *testing.T) {
	in := `<?xpacket begin="x"?><x:xmpmeta xmlns:x="adobe:ns:meta/">exporter noise</x:xmpmeta>Agreement between the parties.<rdf:RDF>rdf soup</rdf:RDF>`

	got := Normalize(in)

	assert.Equal(t, "Agreement between the parties.", got)
}

func TestNormalize_StripsMarkupButKeepsProseBetweenIslands(t *testing.T) {
	in := "<x:xmpmeta>a</x:xmpmeta>First clause.<x:xmpmeta>b</x:xmpmeta>Second clause."

	got := Normalize(in)

	assert.Equal(t, "First clause. Second clause.", got)
}

func TestNormalize_LineEndingsAndWhitespace(t *testing.T) {
	in := "Line one  \t has   runs\r\nLine two\rLine three\n\n\n\n\nLine four"

	got := Normalize(in)

	assert.Equal(t, "Line one has runs\nLine two\nLine three\n\nLine four", got)
}

func TestNormalize_DropsControlAndReplacementRunes(t *testing.T) {
	in := "Before\x00\x08�After​ end"

	got := Normalize(in)

	assert.Equal(t, "BeforeAfter end", got)
}

func TestNormalize_KeepsAccentedText(t *testing.T) {
	assert.Equal(t, "Umsatzsteuer für die Parteien", Normalize("Umsatzsteuer für die Parteien"))
}

func TestNormalize_RemovesNumericEscapes(t *testing.T) {
	assert.Equal(t, "AB", Normalize("A&#x1F;&#160;B"))
}

func TestNormalize_Empty(t *testing.T) {
	assert.Empty(t, Normalize(""))
	assert.Empty(t, Normalize("   \n\t  "))
}
