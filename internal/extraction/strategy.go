// Package extraction turns normalized contract text into the canonical clause
// list.  A pluggable strategy (typically model-backed) is tried first under a
// deadline; the deterministic heuristic segmenter is the always-available
// fallback, so extraction degrades rather than fails when the strategy is
// down.
package extraction

import (
	"context"

	"github.com/lexatic/clause-engine/pkg/types/contract"
)

// Strategy extracts clause candidates from normalized contract text.
// Implementations live outside this package; the coordinator treats any
// error, timeout, or empty result as a signal to fall back.
type Strategy interface {
	// Name identifies the strategy in logs and clause metadata.
	Name() string

	// Extract returns clause candidates for the given text.  The context
	// carries the coordinator's deadline; implementations must honor it.
	Extract(ctx context.Context, text string, contractType contract.ContractType) ([]contract.Clause, error)
}
