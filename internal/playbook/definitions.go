package playbook

import "github.com/lexatic/clause-engine/pkg/types/contract"

// defaultDraftingTone is applied to any playbook definition that omits one,
// so partial definitions never crash downstream consumers.
const defaultDraftingTone = "balanced, plain-language drafting with market-standard positions"

// builtins is the static playbook catalog.  Declaration order matters only
// for listing; lookup goes through the resolver's key and alias maps.
// Guidance text may carry bracketed region tokens ([DATA_PROTECTION_LAW],
// [CURRENCY], [TAX_TERM], [COUNTRY]) resolved per report by the region
// substitution pass.
var builtins = []contract.Playbook{
	{
		Key:         string(contract.ContractTypeNDA),
		DisplayName: "Non-Disclosure Agreement",
		Description: "Mutual or one-way confidentiality agreement protecting shared business information.",
		RegulatoryFocus: []string{
			"trade secret protection",
			"[DATA_PROTECTION_LAW_SHORT] where personal data is exchanged",
		},
		ClauseAnchors: []string{
			"definition of confidential information",
			"permitted use and purpose limitation",
			"standard of care for protecting information",
			"term and duration of confidentiality obligations",
			"return or destruction of materials",
			"governing law and jurisdiction",
		},
		CriticalClauses: []contract.CriticalClause{
			{
				Title:       "Confidentiality obligations",
				MustInclude: []string{"keep confidential information secret", "disclose only to permitted representatives"},
				RedFlags:    []string{"perpetual obligations on all information", "unilateral injunctive relief without notice"},
			},
			{
				Title:       "Term and termination",
				MustInclude: []string{"confidentiality term survives termination"},
				RedFlags:    []string{"obligations terminate immediately upon expiry"},
			},
		},
		NegotiationGuidance: []string{
			"Cap the confidentiality term at 3-5 years except for trade secrets.",
			"Carve out independently developed and publicly available information.",
			"Damages should be payable in [CURRENCY] and exclusive of [TAX_TERM].",
		},
		DraftingTone: "protective of the disclosing party, with mutual obligations where practical",
	},
	{
		Key:         string(contract.ContractTypeDPA),
		DisplayName: "Data Processing Agreement",
		Description: "Controller-processor agreement governing the processing of personal data.",
		RegulatoryFocus: []string{
			"[DATA_PROTECTION_LAW]",
			"international transfer mechanisms",
		},
		ClauseAnchors: []string{
			"subject matter and duration of processing",
			"nature and purpose of processing",
			"categories of data subjects and personal data",
			"processor security measures",
			"sub-processor authorization and flow-down",
			"data subject rights assistance",
			"personal data breach notification",
			"deletion or return of personal data",
			"audit and inspection rights",
		},
		CriticalClauses: []contract.CriticalClause{
			{
				Title:       "Processing on documented instructions",
				MustInclude: []string{"process personal data only on documented instructions"},
				RedFlags:    []string{"processor may use personal data for its own purposes"},
			},
			{
				Title:       "Security of processing",
				MustInclude: []string{"appropriate technical and organisational measures"},
				RedFlags:    []string{"security measures at processor sole discretion"},
			},
			{
				Title:       "Breach notification",
				MustInclude: []string{"notify the controller without undue delay"},
				RedFlags:    []string{"notification only upon regulator request"},
			},
		},
		NegotiationGuidance: []string{
			"Align breach notification windows with [DATA_PROTECTION_LAW_SHORT] supervisory deadlines.",
			"Require prior written authorization for new sub-processors operating outside [COUNTRY].",
			"Audit costs beyond one annual audit are typically borne by the controller.",
		},
		DraftingTone: "controller-protective, tracking the mandatory processor obligations of [DATA_PROTECTION_LAW_SHORT]",
	},
	{
		Key:         string(contract.ContractTypeMSA),
		DisplayName: "Master Services Agreement",
		Description: "Framework agreement for ongoing professional or managed services.",
		RegulatoryFocus: []string{
			"service levels and remedies",
		},
		ClauseAnchors: []string{
			"scope of services and statements of work",
			"fees and payment terms",
			"service levels and service credits",
			"intellectual property ownership",
			"limitation of liability",
			"term and termination for convenience",
			"governing law and jurisdiction",
		},
		CriticalClauses: []contract.CriticalClause{
			{
				Title:       "Limitation of liability",
				MustInclude: []string{"aggregate liability cap", "exclusion of indirect and consequential damages"},
				RedFlags:    []string{"unlimited liability for the customer", "liability cap below fees paid"},
			},
			{
				Title:       "Payment terms",
				MustInclude: []string{"invoices payable within an agreed period"},
				RedFlags:    []string{"payment due immediately on invoice", "unilateral price increases without notice"},
			},
		},
		NegotiationGuidance: []string{
			"Quote fees in [CURRENCY] and state whether they are exclusive of [TAX_TERM].",
			"Tie service credits to measurable service levels rather than general dissatisfaction.",
		},
		DraftingTone: "commercially balanced with clearly allocated delivery risk",
	},
}
