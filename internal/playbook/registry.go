// Package playbook holds the static, read-only catalog of contract-type
// playbooks: the expected provisions, critical clauses, and negotiation
// guidance the coverage evaluator scores documents against.  The catalog is
// immutable configuration built once and passed by reference into the
// components that need it; there is no hidden mutable state.
package playbook

import (
	"sort"
	"strings"

	"github.com/lexatic/clause-engine/pkg/types/contract"
)

// BaselineKey identifies the playbook returned by ResolveOrDefault when no
// definition matches: confidentiality review is the least-wrong default for
// an unknown contract type, and returning it is documented behavior rather
// than a silent failure.
const BaselineKey = string(contract.ContractTypeNDA)

// shortAliases maps the compact solution keys used by the upload pipeline to
// canonical contract-type keys.
var shortAliases = map[string]string{
	"nda": string(contract.ContractTypeNDA),
	"dpa": string(contract.ContractTypeDPA),
	"msa": string(contract.ContractTypeMSA),
}

// Registry is the immutable playbook catalog.  All lookup methods are safe
// for concurrent use because nothing mutates the registry after construction.
type Registry struct {
	byKey   map[string]contract.Playbook
	aliases map[string]string
	keys    []string
}

// NewRegistry builds the catalog from the built-in definitions, normalizing
// partial entries: missing slices become empty, a missing drafting tone gets
// the generic default.  Downstream consumers never see nil fields.
func NewRegistry() *Registry {
	r := &Registry{
		byKey:   make(map[string]contract.Playbook, len(builtins)),
		aliases: make(map[string]string),
	}
	for _, pb := range builtins {
		r.byKey[pb.Key] = withDefaults(pb)
		r.keys = append(r.keys, pb.Key)
		r.aliases[strings.ToLower(pb.Key)] = pb.Key
		r.aliases[strings.ToLower(pb.DisplayName)] = pb.Key
	}
	for alias, key := range shortAliases {
		if _, ok := r.byKey[key]; ok {
			r.aliases[alias] = key
		}
	}
	sort.Strings(r.keys)
	return r
}

// withDefaults fills the fields a partial definition may omit.
func withDefaults(pb contract.Playbook) contract.Playbook {
	if pb.RegulatoryFocus == nil {
		pb.RegulatoryFocus = []string{}
	}
	if pb.ClauseAnchors == nil {
		pb.ClauseAnchors = []string{}
	}
	if pb.CriticalClauses == nil {
		pb.CriticalClauses = []contract.CriticalClause{}
	}
	if pb.NegotiationGuidance == nil {
		pb.NegotiationGuidance = []string{}
	}
	if pb.DraftingTone == "" {
		pb.DraftingTone = defaultDraftingTone
	}
	return pb
}

// Keys returns the canonical playbook keys in sorted order.
func (r *Registry) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Resolve looks up a playbook by canonical key, short alias, or display name,
// case-insensitively.  The second return value distinguishes "no match" from
// a hit so callers can surface unrecognized contract types instead of
// silently reviewing against the wrong playbook.
func (r *Registry) Resolve(key string) (*contract.Playbook, bool) {
	needle := strings.ToLower(strings.TrimSpace(key))
	if needle == "" {
		return nil, false
	}
	canonical, ok := r.aliases[needle]
	if !ok {
		return nil, false
	}
	pb := r.byKey[canonical]
	return clone(&pb), true
}

// ResolveOrDefault behaves like Resolve but falls back to the baseline
// confidentiality playbook when nothing matches.
func (r *Registry) ResolveOrDefault(key string) *contract.Playbook {
	if pb, ok := r.Resolve(key); ok {
		return pb
	}
	pb := r.byKey[BaselineKey]
	return clone(&pb)
}

// clone returns an independent copy so callers cannot mutate the catalog
// through a returned pointer.
func clone(pb *contract.Playbook) *contract.Playbook {
	out := *pb
	out.RegulatoryFocus = copyStrings(pb.RegulatoryFocus)
	out.ClauseAnchors = copyStrings(pb.ClauseAnchors)
	out.NegotiationGuidance = copyStrings(pb.NegotiationGuidance)
	out.CriticalClauses = make([]contract.CriticalClause, len(pb.CriticalClauses))
	for i, cc := range pb.CriticalClauses {
		out.CriticalClauses[i] = contract.CriticalClause{
			Title:       cc.Title,
			MustInclude: copyStrings(cc.MustInclude),
			RedFlags:    copyStrings(cc.RedFlags),
		}
	}
	return &out
}

// copyStrings preserves non-nil-ness: an empty catalog slice stays an empty
// slice in the copy, keeping the "never nil" guarantee of withDefaults.
func copyStrings(src []string) []string {
	if src == nil {
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}
