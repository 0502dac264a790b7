package coverage

import (
	"github.com/lexatic/clause-engine/pkg/types/contract"
)

// clauseIndex pre-tokenizes a clause list once so every anchor and critical
// clause reuses the same token sets.
type clauseIndex struct {
	clauses []contract.Clause
	tokens  []map[string]bool
}

func indexClauses(clauses []contract.Clause) *clauseIndex {
	idx := &clauseIndex{
		clauses: clauses,
		tokens:  make([]map[string]bool, len(clauses)),
	}
	for i, c := range clauses {
		idx.tokens[i] = tokenSet(c.Title + " " + c.OriginalText)
	}
	return idx
}

// firstMatch returns the first clause in declared order whose token set
// satisfies the phrase, or -1.
func (idx *clauseIndex) firstMatch(phrase string) int {
	for i := range idx.clauses {
		if phraseMatchesSet(phrase, idx.tokens[i]) {
			return i
		}
	}
	return -1
}

// Evaluate scores a clause set against a playbook.
//
// Each anchor is met by the first clause crossing the lexical threshold.  A
// critical clause is met when its title matches a clause and every
// mustInclude phrase is satisfied by that same clause; red flags are checked
// against the whole document and recorded independently of met status.  The
// score is (met anchors + met critical clauses) / (total anchors + total
// critical clauses), clamped to [0,1]; a playbook with zero requirements
// scores 1.0 by the explicit vacuous-compliance policy.
func Evaluate(pb *contract.Playbook, clauses []contract.Clause, rawContent string) *contract.CoverageReport {
	idx := indexClauses(clauses)
	docTokens := tokenSet(rawContent)

	report := &contract.CoverageReport{
		AnchorCoverage:  make([]contract.AnchorCoverage, 0, len(pb.ClauseAnchors)),
		CriticalClauses: make([]contract.CriticalClauseResult, 0, len(pb.CriticalClauses)),
	}

	met := 0
	for _, anchor := range pb.ClauseAnchors {
		ac := contract.AnchorCoverage{Anchor: anchor}
		if i := idx.firstMatch(anchor); i >= 0 {
			ac.Met = true
			ac.MatchedClauseID = idx.clauses[i].ID
			met++
		}
		report.AnchorCoverage = append(report.AnchorCoverage, ac)
	}

	for _, cc := range pb.CriticalClauses {
		res := contract.CriticalClauseResult{Title: cc.Title}

		if i := idx.firstMatch(cc.Title); i >= 0 {
			res.MatchedClauseID = idx.clauses[i].ID
			res.Met = true
			for _, must := range cc.MustInclude {
				if !phraseMatchesSet(must, idx.tokens[i]) {
					res.Met = false
					break
				}
			}
		}
		if res.Met {
			met++
		}

		// Red flags are violations wherever they appear in the document,
		// independent of whether the critical clause itself is met.
		for _, flag := range cc.RedFlags {
			if phraseMatchesSet(flag, docTokens) {
				res.ViolatedRedFlags = append(res.ViolatedRedFlags, flag)
			}
		}

		report.CriticalClauses = append(report.CriticalClauses, res)
	}

	total := len(pb.ClauseAnchors) + len(pb.CriticalClauses)
	if total == 0 {
		report.CoverageScore = 1.0
		return report
	}
	score := float64(met) / float64(total)
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	report.CoverageScore = score
	return report
}
