// Package contract defines the public serializable types exchanged between the
// clause-engine library and its orchestration layer: extracted clauses, playbook
// definitions, coverage reports, and jurisdiction context.  JSON field names
// follow the camelCase schema persisted by the external document store, so a
// blob written by this engine round-trips with records produced by earlier
// versions of the product.
package contract

import "strings"

// ContractType is the canonical contract-type key used to select a playbook.
type ContractType string

const (
	ContractTypeNDA ContractType = "non_disclosure_agreement"
	ContractTypeDPA ContractType = "data_processing_agreement"
	ContractTypeMSA ContractType = "master_services_agreement"
)

// IsValid reports whether the contract type is one of the canonical keys.
func (t ContractType) IsValid() bool {
	switch t {
	case ContractTypeNDA, ContractTypeDPA, ContractTypeMSA:
		return true
	}
	return false
}

func (t ContractType) String() string { return string(t) }

// Importance grades how consequential a clause is during review.
type Importance string

const (
	ImportanceLow      Importance = "low"
	ImportanceMedium   Importance = "medium"
	ImportanceHigh     Importance = "high"
	ImportanceCritical Importance = "critical"
)

// IsValid reports whether the importance is one of the four defined grades.
func (i Importance) IsValid() bool {
	switch i {
	case ImportanceLow, ImportanceMedium, ImportanceHigh, ImportanceCritical:
		return true
	}
	return false
}

// Rank returns a total order over importance grades (low=0 … critical=3).
func (i Importance) Rank() int {
	switch i {
	case ImportanceCritical:
		return 3
	case ImportanceHigh:
		return 2
	case ImportanceMedium:
		return 1
	default:
		return 0
	}
}

func (i Importance) String() string { return string(i) }

// ExtractionSource records which strategy produced a clause set.
type ExtractionSource string

const (
	SourceExternal ExtractionSource = "external"
	SourceFallback ExtractionSource = "fallback"
	SourceCache    ExtractionSource = "cache"
)

// Location pins a clause inside the source document.  Heuristic parsing cannot
// always recover page or paragraph numbers, so every field is nullable.
type Location struct {
	Page         *int    `json:"page,omitempty"`
	Paragraph    *int    `json:"paragraph,omitempty"`
	Section      *string `json:"section,omitempty"`
	ClauseNumber *string `json:"clauseNumber,omitempty"`
}

// Metadata carries provenance for a clause: which strategy produced it and
// which contract type the extraction ran under.
type Metadata struct {
	ExtractionSource ExtractionSource `json:"extractionSource"`
	ContractType     string           `json:"contractType,omitempty"`
}

// Clause is the final, persisted representation of a titled, bounded excerpt
// of contract text with an assigned category and importance.
type Clause struct {
	// ID is a slug derived from the heading, disambiguated on collision.
	// Unique within a single extraction run.
	ID string `json:"id"`

	// ClauseID is the stable identifier offered to the document store.
	ClauseID string `json:"clauseId"`

	Title      string     `json:"title"`
	Category   string     `json:"category"`
	Importance Importance `json:"importance"`

	// OriginalText is the verbatim clause body.  Always non-empty; segments
	// with empty bodies are dropped before a Clause is built.
	OriginalText string `json:"originalText"`

	// NormalizedText is a summary of the clause body capped at 240 characters.
	NormalizedText string `json:"normalizedText"`

	Location   Location `json:"location"`
	References []string `json:"references,omitempty"`
	Metadata   Metadata `json:"metadata"`
}

// CriticalClause is a playbook requirement whose absence or dilution is a
// deal-breaker for the contract type.
type CriticalClause struct {
	Title       string   `json:"title"`
	MustInclude []string `json:"mustInclude,omitempty"`
	RedFlags    []string `json:"redFlags,omitempty"`
}

// Playbook is a contract-type-specific specification of expected provisions
// and red flags used for compliance scoring.
type Playbook struct {
	Key                 string           `json:"key"`
	DisplayName         string           `json:"displayName"`
	Description         string           `json:"description"`
	RegulatoryFocus     []string         `json:"regulatoryFocus,omitempty"`
	ClauseAnchors       []string         `json:"clauseAnchors,omitempty"`
	CriticalClauses     []CriticalClause `json:"criticalClauses,omitempty"`
	NegotiationGuidance []string         `json:"negotiationGuidance,omitempty"`
	DraftingTone        string           `json:"draftingTone"`
}

// AnchorCoverage reports whether a single playbook anchor was met and, if so,
// which clause met it.
type AnchorCoverage struct {
	Anchor          string `json:"anchor"`
	Met             bool   `json:"met"`
	MatchedClauseID string `json:"matchedClauseId,omitempty"`
}

// CriticalClauseResult reports the evaluation of one critical clause: whether
// all mustInclude phrases were satisfied and which red flags were triggered.
// Red-flag violations are recorded independently of Met.
type CriticalClauseResult struct {
	Title            string   `json:"title"`
	Met              bool     `json:"met"`
	MatchedClauseID  string   `json:"matchedClauseId,omitempty"`
	ViolatedRedFlags []string `json:"violatedRedFlags,omitempty"`
}

// CoverageReport scores how well a clause set covers a playbook.
// CoverageScore is always within [0,1]; a playbook with zero requirements
// yields 1.0 (vacuous compliance).
type CoverageReport struct {
	CoverageScore   float64                `json:"coverageScore"`
	AnchorCoverage  []AnchorCoverage       `json:"anchorCoverage"`
	CriticalClauses []CriticalClauseResult `json:"criticalClauses"`
}

// RegionContext is the jurisdiction vocabulary derived from free-text
// governing-law input.  RegionKey is empty when no region could be resolved;
// the derived fields then hold generic defaults.
type RegionContext struct {
	RegionKey              string   `json:"regionKey,omitempty"`
	Currency               string   `json:"currency"`
	TaxTerm                string   `json:"taxTerm"`
	DataProtectionLawLong  string   `json:"dataProtectionLawLong"`
	DataProtectionLawShort string   `json:"dataProtectionLawShort"`
	CountryName            string   `json:"countryName"`
	FallbackRegions        []string `json:"fallbackRegions,omitempty"`
}

// Resolved reports whether the input mapped to a canonical region.
func (rc *RegionContext) Resolved() bool {
	return rc != nil && rc.RegionKey != ""
}

// Slugify converts a clause heading into a URL-safe identifier: lowercase,
// non-alphanumerics collapsed to single hyphens, trimmed.  An empty heading
// yields "clause".
func Slugify(heading string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(heading) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "clause"
	}
	return slug
}
