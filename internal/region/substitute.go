package region

import (
	"strings"

	"github.com/lexatic/clause-engine/pkg/types/contract"
)

// Placeholder tokens recognized in playbook guidance text.
const (
	TokenDataProtectionLaw      = "[DATA_PROTECTION_LAW]"
	TokenDataProtectionLawShort = "[DATA_PROTECTION_LAW_SHORT]"
	TokenCurrency               = "[CURRENCY]"
	TokenTaxTerm                = "[TAX_TERM]"
	TokenCountry                = "[COUNTRY]"
)

// Substitute replaces the bracketed placeholder tokens in a guidance string
// with vocabulary from the resolved region context.  A nil context — or one
// with blank fields, as produced when no governing law is supplied — falls
// back to generic phrases, never to a leaked placeholder.
func Substitute(text string, rc *contract.RegionContext) string {
	if !strings.Contains(text, "[") {
		return text
	}
	if rc == nil {
		rc = genericContext()
	}
	replacer := strings.NewReplacer(
		TokenDataProtectionLaw, orDefault(rc.DataProtectionLawLong, "applicable data protection law"),
		TokenDataProtectionLawShort, orDefault(rc.DataProtectionLawShort, "applicable data protection law"),
		TokenCurrency, orDefault(rc.Currency, "the agreed currency"),
		TokenTaxTerm, orDefault(rc.TaxTerm, "applicable taxes"),
		TokenCountry, orDefault(rc.CountryName, "the relevant jurisdiction"),
	)
	return replacer.Replace(text)
}

// SubstituteAll applies Substitute to each guidance line, returning a new
// slice and leaving the playbook's own strings untouched.
func SubstituteAll(lines []string, rc *contract.RegionContext) []string {
	if len(lines) == 0 {
		return lines
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = Substitute(line, rc)
	}
	return out
}

func orDefault(val, def string) string {
	if strings.TrimSpace(val) == "" {
		return def
	}
	return val
}
