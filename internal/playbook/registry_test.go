package playbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexatic/clause-engine/pkg/types/contract"
)

func TestNewRegistry_Keys(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, []string{
		"data_processing_agreement",
		"master_services_agreement",
		"non_disclosure_agreement",
	}, r.Keys())
}

func TestResolve_CanonicalKey(t *testing.T) {
	r := NewRegistry()

	pb, ok := r.Resolve("non_disclosure_agreement")
	require.True(t, ok)
	assert.Equal(t, "Non-Disclosure Agreement", pb.DisplayName)
}

func TestResolve_ShortAliasAndDisplayName(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		key  string
		want string
	}{
		{"nda", string(contract.ContractTypeNDA)},
		{"dpa", string(contract.ContractTypeDPA)},
		{"msa", string(contract.ContractTypeMSA)},
		{"NDA", string(contract.ContractTypeNDA)},
		{"Data Processing Agreement", string(contract.ContractTypeDPA)},
		{"  master services agreement  ", string(contract.ContractTypeMSA)},
	}
	for _, tt := range tests {
		pb, ok := r.Resolve(tt.key)
		require.True(t, ok, "Resolve(%q)", tt.key)
		assert.Equal(t, tt.want, pb.Key)
	}
}

func TestResolve_NoMatchIsExplicit(t *testing.T) {
	r := NewRegistry()

	pb, ok := r.Resolve("franchise_agreement")
	assert.False(t, ok)
	assert.Nil(t, pb)

	pb, ok = r.Resolve("")
	assert.False(t, ok)
	assert.Nil(t, pb)
}

func TestResolveOrDefault_FallsBackToBaseline(t *testing.T) {
	r := NewRegistry()

	pb := r.ResolveOrDefault("franchise_agreement")
	assert.Equal(t, BaselineKey, pb.Key)

	pb = r.ResolveOrDefault("")
	assert.Equal(t, BaselineKey, pb.Key)

	pb = r.ResolveOrDefault("dpa")
	assert.Equal(t, string(contract.ContractTypeDPA), pb.Key)
}

func TestResolve_NeverReturnsNilFields(t *testing.T) {
	r := NewRegistry()

	for _, key := range r.Keys() {
		pb, ok := r.Resolve(key)
		require.True(t, ok)
		assert.NotNil(t, pb.RegulatoryFocus, key)
		assert.NotNil(t, pb.ClauseAnchors, key)
		assert.NotNil(t, pb.CriticalClauses, key)
		assert.NotNil(t, pb.NegotiationGuidance, key)
		assert.NotEmpty(t, pb.DraftingTone, key)
	}
}

func TestResolve_ReturnsIndependentCopies(t *testing.T) {
	r := NewRegistry()

	first, ok := r.Resolve("nda")
	require.True(t, ok)
	first.ClauseAnchors[0] = "tampered"
	first.CriticalClauses[0].RedFlags[0] = "tampered"

	second, ok := r.Resolve("nda")
	require.True(t, ok)
	assert.Equal(t, "definition of confidential information", second.ClauseAnchors[0])
	assert.NotEqual(t, "tampered", second.CriticalClauses[0].RedFlags[0])
}

func TestWithDefaults_FillsPartialDefinition(t *testing.T) {
	pb := withDefaults(contract.Playbook{Key: "bare"})

	assert.NotNil(t, pb.RegulatoryFocus)
	assert.NotNil(t, pb.ClauseAnchors)
	assert.NotNil(t, pb.CriticalClauses)
	assert.NotNil(t, pb.NegotiationGuidance)
	assert.Equal(t, defaultDraftingTone, pb.DraftingTone)
}
