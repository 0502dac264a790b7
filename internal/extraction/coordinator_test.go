package extraction

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexatic/clause-engine/internal/infrastructure/monitoring/logging"
	"github.com/lexatic/clause-engine/internal/infrastructure/monitoring/prometheus"
	"github.com/lexatic/clause-engine/pkg/errors"
	"github.com/lexatic/clause-engine/pkg/types/contract"
)

type stubStrategy struct {
	name    string
	clauses []contract.Clause
	err     error
	delay   time.Duration
	calls   atomic.Int32
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Extract(ctx context.Context, _ string, _ contract.ContractType) ([]contract.Clause, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.clauses, s.err
}

const sampleContract = `CONFIDENTIALITY
Each party shall keep the other party's information secret.
2. Term
This Agreement remains in force for two years, then may terminate.`

func TestExtract_StrategySucceeds(t *testing.T) {
	strategy := &stubStrategy{
		name: "model",
		clauses: []contract.Clause{
			{Title: "Confidentiality", OriginalText: "Information stays secret between the parties."},
		},
	}
	c := NewCoordinator(WithStrategy(strategy), WithLogger(logging.NewNopLogger()))

	clauses, source, err := c.Extract(context.Background(), sampleContract, contract.ContractTypeNDA)

	require.NoError(t, err)
	assert.Equal(t, contract.SourceExternal, source)
	require.Len(t, clauses, 1)
	assert.Equal(t, int32(1), strategy.calls.Load())
	assert.Equal(t, contract.SourceExternal, clauses[0].Metadata.ExtractionSource)
}

func TestExtract_StrategyErrorFallsBack(t *testing.T) {
	strategy := &stubStrategy{name: "model", err: errors.New(errors.ErrCodeExternalService, "model down")}
	c := NewCoordinator(WithStrategy(strategy))

	clauses, source, err := c.Extract(context.Background(), sampleContract, contract.ContractTypeNDA)

	require.NoError(t, err)
	assert.Equal(t, contract.SourceFallback, source)
	assert.NotEmpty(t, clauses)
	// One attempt, no retry.
	assert.Equal(t, int32(1), strategy.calls.Load())
}

func TestExtract_StrategyTimeoutFallsBack(t *testing.T) {
	strategy := &stubStrategy{name: "slow", delay: 200 * time.Millisecond}
	c := NewCoordinator(WithStrategy(strategy), WithTimeout(10*time.Millisecond))

	clauses, source, err := c.Extract(context.Background(), sampleContract, contract.ContractTypeNDA)

	require.NoError(t, err)
	assert.Equal(t, contract.SourceFallback, source)
	assert.NotEmpty(t, clauses)
}

func TestExtract_StrategyEmptyResultFallsBack(t *testing.T) {
	strategy := &stubStrategy{name: "empty"}
	c := NewCoordinator(WithStrategy(strategy))

	_, source, err := c.Extract(context.Background(), sampleContract, contract.ContractTypeNDA)

	require.NoError(t, err)
	assert.Equal(t, contract.SourceFallback, source)
}

func TestExtract_NoStrategyUsesFallbackDirectly(t *testing.T) {
	c := NewCoordinator()

	clauses, source, err := c.Extract(context.Background(), sampleContract, contract.ContractTypeNDA)

	require.NoError(t, err)
	assert.Equal(t, contract.SourceFallback, source)
	require.Len(t, clauses, 2)
	assert.Equal(t, "confidentiality", clauses[0].ID)
	assert.Equal(t, "2-term", clauses[1].ID)
	require.NotNil(t, clauses[1].Location.Section)
	assert.Equal(t, "2", *clauses[1].Location.Section)
}

func TestExtract_UnparseableTextReturnsError(t *testing.T) {
	c := NewCoordinator()

	_, _, err := c.Extract(context.Background(), "", contract.ContractTypeNDA)

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnparseableContent))
}

func TestExtract_FinalizeDropsEmptyBodies(t *testing.T) {
	strategy := &stubStrategy{
		name: "model",
		clauses: []contract.Clause{
			{Title: "Empty", OriginalText: "   "},
			{Title: "Kept", OriginalText: "The parties shall cooperate."},
		},
	}
	c := NewCoordinator(WithStrategy(strategy))

	clauses, _, err := c.Extract(context.Background(), sampleContract, contract.ContractTypeNDA)

	require.NoError(t, err)
	require.Len(t, clauses, 1)
	assert.Equal(t, "Kept", clauses[0].Title)
}

func TestExtract_SlugCollisionsDisambiguated(t *testing.T) {
	strategy := &stubStrategy{
		name: "model",
		clauses: []contract.Clause{
			{Title: "Definitions", OriginalText: "First definitions block."},
			{Title: "Definitions", OriginalText: "Second definitions block."},
			{Title: "Definitions", OriginalText: "Third definitions block."},
		},
	}
	c := NewCoordinator(WithStrategy(strategy))

	clauses, _, err := c.Extract(context.Background(), sampleContract, contract.ContractTypeNDA)

	require.NoError(t, err)
	require.Len(t, clauses, 3)
	assert.Equal(t, "definitions", clauses[0].ID)
	assert.Equal(t, "definitions-2", clauses[1].ID)
	assert.Equal(t, "definitions-3", clauses[2].ID)

	seen := map[string]bool{}
	for _, cl := range clauses {
		assert.False(t, seen[cl.ID])
		seen[cl.ID] = true
		assert.NotEmpty(t, cl.ClauseID)
	}
}

func TestExtract_ClassifierReappliedToStrategyOutput(t *testing.T) {
	strategy := &stubStrategy{
		name: "model",
		clauses: []contract.Clause{
			// The strategy's own category claim is ignored.
			{Title: "Limitation of Liability", Category: "whatever", OriginalText: "Neither party shall be liable for indirect damages."},
		},
	}
	c := NewCoordinator(WithStrategy(strategy))

	clauses, _, err := c.Extract(context.Background(), sampleContract, contract.ContractTypeNDA)

	require.NoError(t, err)
	require.Len(t, clauses, 1)
	assert.Equal(t, "liability_and_indemnity", clauses[0].Category)
	assert.Equal(t, contract.ImportanceCritical, clauses[0].Importance)
}

func TestExtract_NormalizedTextCapped(t *testing.T) {
	long := strings.Repeat("The receiving party shall protect information. ", 20)
	strategy := &stubStrategy{
		name:    "model",
		clauses: []contract.Clause{{Title: "Confidentiality", OriginalText: long}},
	}
	c := NewCoordinator(WithStrategy(strategy))

	clauses, _, err := c.Extract(context.Background(), sampleContract, contract.ContractTypeNDA)

	require.NoError(t, err)
	require.Len(t, clauses, 1)
	assert.LessOrEqual(t, len([]rune(clauses[0].NormalizedText)), 240)
	assert.Equal(t, strings.TrimSpace(long), clauses[0].OriginalText)
}

func TestExtract_StrategyFailureRecorded(t *testing.T) {
	reg := promclient.NewRegistry()
	m := prometheus.NewEngineMetrics("clause_engine", reg)
	strategy := &stubStrategy{name: "model", err: errors.New(errors.ErrCodeExternalService, "model down")}
	c := NewCoordinator(WithStrategy(strategy), WithMetrics(m))

	_, source, err := c.Extract(context.Background(), sampleContract, contract.ContractTypeNDA)

	require.NoError(t, err)
	assert.Equal(t, contract.SourceFallback, source)
	expected := `
# HELP clause_engine_strategy_failures_total External strategy attempts that fell back, by failure code.
# TYPE clause_engine_strategy_failures_total counter
clause_engine_strategy_failures_total{code="EXT_001"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"clause_engine_strategy_failures_total"))
}

func TestExtract_StrategyTimeoutRecorded(t *testing.T) {
	reg := promclient.NewRegistry()
	m := prometheus.NewEngineMetrics("clause_engine", reg)
	strategy := &stubStrategy{name: "slow", delay: 200 * time.Millisecond}
	c := NewCoordinator(WithStrategy(strategy), WithTimeout(10*time.Millisecond), WithMetrics(m))

	_, _, err := c.Extract(context.Background(), sampleContract, contract.ContractTypeNDA)

	require.NoError(t, err)
	expected := `
# HELP clause_engine_strategy_failures_total External strategy attempts that fell back, by failure code.
# TYPE clause_engine_strategy_failures_total counter
clause_engine_strategy_failures_total{code="EXT_002"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"clause_engine_strategy_failures_total"))
}

func TestExtract_StrategyEmptyResultRecorded(t *testing.T) {
	reg := promclient.NewRegistry()
	m := prometheus.NewEngineMetrics("clause_engine", reg)
	strategy := &stubStrategy{name: "empty"}
	c := NewCoordinator(WithStrategy(strategy), WithMetrics(m))

	_, _, err := c.Extract(context.Background(), sampleContract, contract.ContractTypeNDA)

	require.NoError(t, err)
	expected := `
# HELP clause_engine_strategy_failures_total External strategy attempts that fell back, by failure code.
# TYPE clause_engine_strategy_failures_total counter
clause_engine_strategy_failures_total{code="EXT_004"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"clause_engine_strategy_failures_total"))
}

func TestExtract_FallbackMetadataCarriesContractType(t *testing.T) {
	c := NewCoordinator()

	clauses, _, err := c.Extract(context.Background(), sampleContract, contract.ContractTypeDPA)

	require.NoError(t, err)
	for _, cl := range clauses {
		assert.Equal(t, contract.SourceFallback, cl.Metadata.ExtractionSource)
		assert.Equal(t, "data_processing_agreement", cl.Metadata.ContractType)
	}
}
