package clause

import (
	"strings"

	"github.com/lexatic/clause-engine/pkg/types/contract"
)

// Category keys assigned by the classifier.  These are part of the persisted
// schema: reports from different extraction strategies stay comparable
// because the same classifier runs over every clause regardless of origin.
const (
	CategoryConfidentiality = "confidential_information"
	CategoryTermTermination = "term_and_termination"
	CategoryLiability       = "liability_and_indemnity"
	CategoryRemedies        = "remedies"
	CategoryPayment         = "payment_terms"
	CategoryDataProtection  = "data_protection"
	CategoryGoverningLaw    = "governing_law"
	CategoryAudit           = "audit_and_compliance"
	CategoryIP              = "intellectual_property"
	CategoryGeneral         = "general"
)

// categoryRule pairs a category with the keywords that select it.  Rules are
// evaluated in declaration order; the first hit wins.
type categoryRule struct {
	category string
	keywords []string
}

var categoryRules = []categoryRule{
	{CategoryConfidentiality, []string{
		"confidential", "non-disclosure", "nondisclosure", "secrecy", "proprietary information", "trade secret",
	}},
	{CategoryTermTermination, []string{
		"termination", "terminate", "term of this", "expiry", "expiration", "duration", "renewal",
	}},
	{CategoryLiability, []string{
		"liability", "liable", "indemnif", "indemnity", "hold harmless",
	}},
	{CategoryRemedies, []string{
		"remedies", "remedy", "injunctive", "injunction", "specific performance", "equitable relief",
	}},
	{CategoryPayment, []string{
		"payment", "fees", "invoice", "compensation", "consideration", "purchase price",
	}},
	{CategoryDataProtection, []string{
		"data protection", "personal data", "gdpr", "data subject", "privacy", "processing of data", "data processor", "data controller",
	}},
	{CategoryGoverningLaw, []string{
		"governing law", "jurisdiction", "venue", "dispute resolution", "arbitration", "governed by",
	}},
	{CategoryAudit, []string{
		"audit", "compliance", "inspection", "books and records",
	}},
	{CategoryIP, []string{
		"intellectual property", "license", "licence", "copyright", "trademark", "patent",
	}},
}

// defaultCategoryByType supplies the contract-type-based default used when no
// keyword rule fires; unknown types fall through to the general category.
var defaultCategoryByType = map[contract.ContractType]string{
	contract.ContractTypeNDA: CategoryConfidentiality,
	contract.ContractTypeDPA: CategoryDataProtection,
}

// Classify assigns a category and importance to a clause.  It is a pure
// deterministic function of the lowercase heading+text (plus the contract
// type for the no-match default), so identical input always yields identical
// output across calls and across extraction strategies.
func Classify(heading, text string, contractType contract.ContractType) (string, contract.Importance) {
	combined := strings.ToLower(heading + " " + text)

	category := ""
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(combined, kw) {
				category = rule.category
				break
			}
		}
		if category != "" {
			break
		}
	}
	// A bare "TERM" / "Terms" heading carries none of the rule keywords.
	// Matched as a whole token against the heading only, so "determine" in a
	// body or "Payment Terms" (caught by the payment rule above) cannot
	// select the category.
	if category == "" && headingHasTermToken(heading) {
		category = CategoryTermTermination
	}
	if category == "" {
		if def, ok := defaultCategoryByType[contractType]; ok {
			category = def
		} else {
			category = CategoryGeneral
		}
	}

	return category, classifyImportance(category, combined)
}

// headingHasTermToken reports whether the heading contains "term" or "terms"
// as a standalone token.
func headingHasTermToken(heading string) bool {
	for _, w := range strings.Fields(strings.ToLower(heading)) {
		w = strings.Trim(w, ".,:;()")
		if w == "term" || w == "terms" {
			return true
		}
	}
	return false
}

// classifyImportance grades a clause.  Priority order: liability/indemnity is
// always critical; termination, confidentiality, audit, and anything touching
// security is high; payment and licensing are medium; the rest is low.
func classifyImportance(category, combined string) contract.Importance {
	switch category {
	case CategoryLiability:
		return contract.ImportanceCritical
	case CategoryTermTermination, CategoryConfidentiality, CategoryAudit:
		return contract.ImportanceHigh
	}
	if strings.Contains(combined, "security") {
		return contract.ImportanceHigh
	}
	switch category {
	case CategoryPayment, CategoryIP:
		return contract.ImportanceMedium
	}
	return contract.ImportanceLow
}
