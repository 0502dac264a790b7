package clause

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lexatic/clause-engine/pkg/types/contract"
)

func TestClassify_CategoriesByKeyword(t *testing.T) {
	tests := []struct {
		name       string
		heading    string
		text       string
		wantCat    string
		wantImport contract.Importance
	}{
		{
			name:       "confidentiality heading",
			heading:    "CONFIDENTIALITY",
			text:       "Each party shall keep information secret.",
			wantCat:    CategoryConfidentiality,
			wantImport: contract.ImportanceHigh,
		},
		{
			name:       "termination",
			heading:    "TERM",
			text:       "Either party may terminate on notice.",
			wantCat:    CategoryTermTermination,
			wantImport: contract.ImportanceHigh,
		},
		{
			name:       "liability is critical",
			heading:    "Limitation of Liability",
			text:       "Neither party shall be liable for indirect damages.",
			wantCat:    CategoryLiability,
			wantImport: contract.ImportanceCritical,
		},
		{
			name:       "indemnity maps to liability",
			heading:    "Indemnification",
			text:       "The vendor will indemnify the customer.",
			wantCat:    CategoryLiability,
			wantImport: contract.ImportanceCritical,
		},
		{
			name:       "payment is medium",
			heading:    "Fees",
			text:       "Invoices are payable within 30 days.",
			wantCat:    CategoryPayment,
			wantImport: contract.ImportanceMedium,
		},
		{
			name:       "data protection",
			heading:    "Data Processing",
			text:       "Personal data is processed per the GDPR.",
			wantCat:    CategoryDataProtection,
			wantImport: contract.ImportanceLow,
		},
		{
			name:       "governing law",
			heading:    "Governing Law",
			text:       "This Agreement is governed by the laws of Sweden.",
			wantCat:    CategoryGoverningLaw,
			wantImport: contract.ImportanceLow,
		},
		{
			name:       "audit",
			heading:    "Audit Rights",
			text:       "The customer may inspect books and records.",
			wantCat:    CategoryAudit,
			wantImport: contract.ImportanceHigh,
		},
		{
			name:       "ip licensing is medium",
			heading:    "License Grant",
			text:       "A non-exclusive copyright license is granted.",
			wantCat:    CategoryIP,
			wantImport: contract.ImportanceMedium,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, imp := Classify(tt.heading, tt.text, contract.ContractTypeMSA)
			assert.Equal(t, tt.wantCat, cat)
			assert.Equal(t, tt.wantImport, imp)
		})
	}
}

func TestClassify_BareTermHeading(t *testing.T) {
	// The body mentions no termination vocabulary at all; the heading token
	// alone selects the category, even against the NDA default.
	cat, imp := Classify("TERM", "This Agreement is effective for two years.", contract.ContractTypeNDA)
	assert.Equal(t, CategoryTermTermination, cat)
	assert.Equal(t, contract.ImportanceHigh, imp)

	cat, _ = Classify("Term", "This Agreement is effective for two years.", contract.ContractTypeMSA)
	assert.Equal(t, CategoryTermTermination, cat)
}

func TestClassify_TermTokenDoesNotHijackOtherHeadings(t *testing.T) {
	// "Payment Terms" hits the payment keyword rule before the heading-token
	// fallback is consulted.
	cat, _ := Classify("Payment Terms", "All fees are due within 30 days of invoice.", contract.ContractTypeMSA)
	assert.Equal(t, CategoryPayment, cat)

	// "determine" in a body is not a term token.
	cat, _ = Classify("Cooperation", "The parties shall determine the scope jointly.", contract.ContractTypeMSA)
	assert.Equal(t, CategoryGeneral, cat)
}

func TestClassify_FirstRuleWins(t *testing.T) {
	// Mentions both confidentiality and termination; confidentiality is
	// declared first.
	cat, _ := Classify("Survival", "Confidential obligations survive termination.", contract.ContractTypeMSA)
	assert.Equal(t, CategoryConfidentiality, cat)
}

func TestClassify_DefaultByContractType(t *testing.T) {
	neutral := "The parties agree to cooperate in good faith."

	cat, _ := Classify("Cooperation", neutral, contract.ContractTypeNDA)
	assert.Equal(t, CategoryConfidentiality, cat)

	cat, _ = Classify("Cooperation", neutral, contract.ContractTypeDPA)
	assert.Equal(t, CategoryDataProtection, cat)

	cat, _ = Classify("Cooperation", neutral, contract.ContractTypeMSA)
	assert.Equal(t, CategoryGeneral, cat)

	cat, _ = Classify("Cooperation", neutral, contract.ContractType(""))
	assert.Equal(t, CategoryGeneral, cat)
}

func TestClassify_SecurityMentionRaisesImportance(t *testing.T) {
	_, imp := Classify("Information Security", "The vendor maintains security controls over systems.", contract.ContractTypeMSA)
	assert.Equal(t, contract.ImportanceHigh, imp)
}

func TestClassify_Deterministic(t *testing.T) {
	heading := "Remedies"
	text := "The injured party may seek injunctive relief."

	cat1, imp1 := Classify(heading, text, contract.ContractTypeNDA)
	for i := 0; i < 50; i++ {
		cat, imp := Classify(heading, text, contract.ContractTypeNDA)
		assert.Equal(t, cat1, cat)
		assert.Equal(t, imp1, imp)
	}
	assert.Equal(t, CategoryRemedies, cat1)
}
