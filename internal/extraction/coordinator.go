package extraction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lexatic/clause-engine/internal/clause"
	"github.com/lexatic/clause-engine/internal/infrastructure/monitoring/logging"
	"github.com/lexatic/clause-engine/internal/infrastructure/monitoring/prometheus"
	"github.com/lexatic/clause-engine/pkg/errors"
	"github.com/lexatic/clause-engine/pkg/types/contract"
)

const (
	// defaultStrategyTimeout bounds a single strategy attempt when the caller
	// configures nothing.
	defaultStrategyTimeout = 30 * time.Second

	// normalizedTextLimit caps the per-clause summary stored alongside the
	// verbatim body.
	normalizedTextLimit = 240
)

// Coordinator runs clause extraction: one bounded attempt against the
// configured strategy, then the deterministic heuristic fallback.  There are
// no retries; a strategy that fails once this run is skipped, not hammered.
type Coordinator struct {
	strategy Strategy
	timeout  time.Duration
	logger   logging.Logger
	metrics  *prometheus.EngineMetrics
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithStrategy installs the primary extraction strategy.  Without one the
// coordinator goes straight to the heuristic fallback.
func WithStrategy(s Strategy) Option {
	return func(c *Coordinator) { c.strategy = s }
}

// WithTimeout bounds each strategy attempt.  Non-positive values keep the
// default.
func WithTimeout(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the coordinator's logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics installs the Prometheus instruments; strategy fallbacks are
// recorded by failure code.
func WithMetrics(m *prometheus.EngineMetrics) Option {
	return func(c *Coordinator) { c.metrics = m }
}

// NewCoordinator constructs a Coordinator with the given options.
func NewCoordinator(opts ...Option) *Coordinator {
	c := &Coordinator{
		timeout: defaultStrategyTimeout,
		logger:  logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Extract produces the canonical clause list for normalized contract text and
// reports which source produced it.  The strategy result is accepted only
// when it yields at least one usable clause; on error, timeout, or an empty
// result the heuristic segmenter takes over.  Both paths run the same
// classifier and the same finalization, so clause IDs, categories, and
// importance grades are comparable regardless of origin.
func (c *Coordinator) Extract(ctx context.Context, text string, contractType contract.ContractType) ([]contract.Clause, contract.ExtractionSource, error) {
	if c.strategy != nil {
		if clauses, ok := c.tryStrategy(ctx, text, contractType); ok {
			return clauses, contract.SourceExternal, nil
		}
	}

	clauses, err := c.fallback(text, contractType)
	if err != nil {
		return nil, contract.SourceFallback, err
	}
	return clauses, contract.SourceFallback, nil
}

// tryStrategy runs one bounded attempt against the configured strategy.  Any
// failure mode — error, deadline, zero usable clauses — returns ok=false.
func (c *Coordinator) tryStrategy(ctx context.Context, text string, contractType contract.ContractType) ([]contract.Clause, bool) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	candidates, err := c.strategy.Extract(attemptCtx, text, contractType)
	if err != nil {
		code := errors.ErrCodeStrategyFailed
		if attemptCtx.Err() == context.DeadlineExceeded {
			code = errors.ErrCodeStrategyTimeout
		}
		c.metrics.ObserveStrategyFailure(string(code))
		c.logger.Warn("extraction strategy failed, falling back to heuristic segmentation",
			logging.String("strategy", c.strategy.Name()),
			logging.String("code", string(code)),
			logging.Duration("elapsed", time.Since(start)),
			logging.Err(err),
		)
		return nil, false
	}

	clauses := c.finalize(candidates, contract.SourceExternal, contractType)
	if len(clauses) == 0 {
		c.metrics.ObserveStrategyFailure(string(errors.ErrCodeStrategyBadResponse))
		c.logger.Warn("extraction strategy returned no usable clauses, falling back",
			logging.String("strategy", c.strategy.Name()),
			logging.Int("candidates", len(candidates)),
		)
		return nil, false
	}

	c.logger.Debug("extraction strategy succeeded",
		logging.String("strategy", c.strategy.Name()),
		logging.Int("clauses", len(clauses)),
		logging.Duration("elapsed", time.Since(start)),
	)
	return clauses, true
}

// fallback segments the text heuristically and promotes each segment to a
// clause candidate.
func (c *Coordinator) fallback(text string, contractType contract.ContractType) ([]contract.Clause, error) {
	segments := clause.Split(text)
	if len(segments) == 0 {
		return nil, errors.Unparseable("no clauses could be extracted from the document text")
	}

	candidates := make([]contract.Clause, 0, len(segments))
	for _, seg := range segments {
		cand := contract.Clause{
			Title:        seg.Heading,
			OriginalText: seg.Text,
			References:   seg.References,
		}
		if seg.Section != "" {
			section := seg.Section
			cand.Location.Section = &section
			cand.Location.ClauseNumber = &section
		}
		paragraph := seg.Ordinal + 1
		cand.Location.Paragraph = &paragraph
		candidates = append(candidates, cand)
	}

	clauses := c.finalize(candidates, contract.SourceFallback, contractType)
	if len(clauses) == 0 {
		return nil, errors.Unparseable("segmentation produced no clauses with body text")
	}
	return clauses, nil
}

// finalize turns raw candidates from either source into canonical clauses:
// empty bodies are dropped, the classifier is (re)applied so categories never
// depend on the strategy's opinion, IDs are slugged and de-duplicated, and
// every clause gets a fresh ClauseID and provenance metadata.
func (c *Coordinator) finalize(candidates []contract.Clause, source contract.ExtractionSource, contractType contract.ContractType) []contract.Clause {
	clauses := make([]contract.Clause, 0, len(candidates))
	seen := make(map[string]int, len(candidates))

	for _, cand := range candidates {
		cand.OriginalText = strings.TrimSpace(cand.OriginalText)
		if cand.OriginalText == "" {
			continue
		}
		cand.Title = strings.TrimSpace(cand.Title)

		cand.Category, cand.Importance = clause.Classify(cand.Title, cand.OriginalText, contractType)
		cand.ID = uniqueSlug(cand.Title, seen)
		cand.ClauseID = uuid.NewString()
		cand.NormalizedText = summarize(cand.OriginalText, normalizedTextLimit)
		cand.Metadata = contract.Metadata{
			ExtractionSource: source,
			ContractType:     contractType.String(),
		}

		clauses = append(clauses, cand)
	}
	return clauses
}

// uniqueSlug derives the heading slug and disambiguates repeats within the
// run: "definitions", "definitions-2", "definitions-3".
func uniqueSlug(title string, seen map[string]int) string {
	slug := contract.Slugify(title)
	seen[slug]++
	if n := seen[slug]; n > 1 {
		return fmt.Sprintf("%s-%d", slug, n)
	}
	return slug
}

// summarize collapses the body onto one line and truncates at a rune limit.
func summarize(text string, limit int) string {
	joined := strings.Join(strings.Fields(text), " ")
	runes := []rune(joined)
	if len(runes) <= limit {
		return joined
	}
	return strings.TrimSpace(string(runes[:limit-1])) + "…"
}
