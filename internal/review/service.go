// Package review is the engine's orchestration layer.  It wires document
// decoding, clause extraction, playbook coverage, and region-aware guidance
// into the three operations the embedding application calls: extract clauses,
// analyze coverage, and build a context digest.  Infrastructure (cache,
// object storage, ingestion records, metrics) is injected through narrow
// interfaces so tests run against in-memory fakes.
package review

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/lexatic/clause-engine/internal/coverage"
	"github.com/lexatic/clause-engine/internal/document"
	"github.com/lexatic/clause-engine/internal/extraction"
	"github.com/lexatic/clause-engine/internal/infrastructure/monitoring/logging"
	"github.com/lexatic/clause-engine/internal/infrastructure/monitoring/prometheus"
	"github.com/lexatic/clause-engine/internal/playbook"
	"github.com/lexatic/clause-engine/internal/region"
	"github.com/lexatic/clause-engine/pkg/errors"
	"github.com/lexatic/clause-engine/pkg/types/contract"
)

// IngestionStatus is the lifecycle state of an ingestion record.
type IngestionStatus string

const (
	StatusUploaded  IngestionStatus = "uploaded"
	StatusExtracted IngestionStatus = "extracted"
	StatusFailed    IngestionStatus = "failed"
)

// Ingestion is the persisted record of one uploaded contract document.
type Ingestion struct {
	ID            string
	ContractType  string
	Status        IngestionStatus
	FileName      string
	Content       string
	StorageBucket string
	StoragePath   string
	GoverningLaw  string
	ClauseCount   int
	ClausesCached bool
	FailureReason string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ClauseStore is the clause-set cache contract.  A miss is signalled by an
// error carrying errors.ErrCodeNotFound.
type ClauseStore interface {
	Get(ctx context.Context, ingestionID string) ([]contract.Clause, error)
	Set(ctx context.Context, ingestionID string, clauses []contract.Clause) error
	Delete(ctx context.Context, ingestionID string) error
}

// DocumentFetcher retrieves raw document bytes from object storage.
type DocumentFetcher interface {
	Fetch(ctx context.Context, bucket, path string) ([]byte, error)
}

// IngestionStore persists ingestion records and their lifecycle transitions.
type IngestionStore interface {
	Get(ctx context.Context, id string) (*Ingestion, error)
	MarkExtracted(ctx context.Context, id string, clauseCount int, cached bool) error
	MarkFailed(ctx context.Context, id, reason string) error
}

// contractTypeAliases maps short and display forms to canonical keys.
var contractTypeAliases = map[string]contract.ContractType{
	"nda": contract.ContractTypeNDA,
	"dpa": contract.ContractTypeDPA,
	"msa": contract.ContractTypeMSA,
}

// NormalizeContractType maps user-supplied contract-type strings (canonical
// keys, short aliases, mixed case) to a canonical type.  Unknown and empty
// input falls back to the NDA baseline, mirroring the playbook registry's
// default.
func NormalizeContractType(s string) contract.ContractType {
	key := strings.ToLower(strings.TrimSpace(s))
	if ct := contract.ContractType(key); ct.IsValid() {
		return ct
	}
	if ct, ok := contractTypeAliases[key]; ok {
		return ct
	}
	return contract.ContractTypeNDA
}

// Service orchestrates the review pipeline.
type Service struct {
	logger      logging.Logger
	coordinator *extraction.Coordinator
	registry    *playbook.Registry
	cache       ClauseStore
	fetcher     DocumentFetcher
	ingestions  IngestionStore
	metrics     *prometheus.EngineMetrics
	digestOpts  coverage.DigestOptions
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the service logger.
func WithLogger(l logging.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClauseStore installs the clause-set cache.  Without one every request
// re-extracts.
func WithClauseStore(store ClauseStore) ServiceOption {
	return func(s *Service) { s.cache = store }
}

// WithDocumentFetcher installs the object-storage fetcher used when an
// ingestion record references a stored document instead of inline content.
func WithDocumentFetcher(f DocumentFetcher) ServiceOption {
	return func(s *Service) { s.fetcher = f }
}

// WithIngestionStore installs the ingestion record store.  Lifecycle writes
// are best-effort: failures are logged, never surfaced.
func WithIngestionStore(store IngestionStore) ServiceOption {
	return func(s *Service) { s.ingestions = store }
}

// WithMetrics installs the Prometheus instruments.
func WithMetrics(m *prometheus.EngineMetrics) ServiceOption {
	return func(s *Service) { s.metrics = m }
}

// WithDigestOptions bounds the context digests built by the service.
func WithDigestOptions(opts coverage.DigestOptions) ServiceOption {
	return func(s *Service) { s.digestOpts = opts }
}

// NewService constructs the review service around an extraction coordinator
// and a playbook registry.
func NewService(coordinator *extraction.Coordinator, registry *playbook.Registry, opts ...ServiceOption) *Service {
	s := &Service{
		logger:      logging.NewNopLogger(),
		coordinator: coordinator,
		registry:    registry,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExtractRequest carries the inputs of a clause extraction.
type ExtractRequest struct {
	// IngestionID identifies the uploaded document.  Required for caching
	// and record lifecycle; optional for pure inline extraction.
	IngestionID string

	// Content is the inline document content: plain text, raw XML, or a
	// base64 envelope.  When empty the document is loaded via the ingestion
	// record.
	Content string

	// ContractType selects the classification defaults ("nda",
	// "data_processing_agreement", ...).
	ContractType string

	// FileName supplies the extension hint for format detection.
	FileName string

	// ForceRefresh bypasses and overwrites any cached clause set.
	ForceRefresh bool
}

// ExtractResult is the outcome of a clause extraction.
type ExtractResult struct {
	IngestionID  string                    `json:"ingestionId,omitempty"`
	ContractType contract.ContractType     `json:"contractType"`
	Clauses      []contract.Clause         `json:"clauses"`
	Source       contract.ExtractionSource `json:"source"`
}

// ExtractClauses runs the extraction pipeline: cache lookup, content
// resolution, envelope decoding, normalization, strategy-with-fallback
// extraction, then best-effort cache and record writes.  Input errors
// (missing content, empty text) surface to the caller; persistence failures
// after a successful extraction are logged and swallowed so a working
// extraction is never failed by a dead cache or database.
func (s *Service) ExtractClauses(ctx context.Context, req ExtractRequest) (*ExtractResult, error) {
	contractType := NormalizeContractType(req.ContractType)

	// A cache hit requires cached clauses for the ingestion, no forced
	// refresh, and no new raw content: fresh inline content supersedes
	// whatever was extracted from the previously stored document.
	if req.IngestionID != "" && s.cache != nil && !req.ForceRefresh && strings.TrimSpace(req.Content) == "" {
		clauses, err := s.cache.Get(ctx, req.IngestionID)
		if err == nil {
			s.metrics.ObserveCacheHit()
			s.metrics.ObserveExtraction(string(contract.SourceCache), 0, len(clauses))
			return &ExtractResult{
				IngestionID:  req.IngestionID,
				ContractType: contractType,
				Clauses:      clauses,
				Source:       contract.SourceCache,
			}, nil
		}
		if !errors.IsCode(err, errors.ErrCodeNotFound) {
			s.logger.Warn("clause cache read failed, extracting from source",
				logging.String("ingestion_id", req.IngestionID),
				logging.Err(err),
			)
		}
		s.metrics.ObserveCacheMiss()
	}

	// Force refresh drops the stale entry up front, so it is gone even if the
	// re-extraction below fails.
	if req.ForceRefresh && req.IngestionID != "" && s.cache != nil {
		if err := s.cache.Delete(ctx, req.IngestionID); err != nil {
			s.logger.Warn("failed to invalidate cached clause set",
				logging.String("ingestion_id", req.IngestionID),
				logging.Err(err),
			)
		}
	}

	start := time.Now()

	content, fileName, err := s.resolveContent(ctx, req)
	if err != nil {
		s.markFailed(ctx, req.IngestionID, err)
		return nil, err
	}

	normalized, err := s.decodeAndNormalize(content, fileName)
	if err != nil {
		s.markFailed(ctx, req.IngestionID, err)
		return nil, err
	}

	clauses, source, err := s.coordinator.Extract(ctx, normalized, contractType)
	if err != nil {
		s.markFailed(ctx, req.IngestionID, err)
		return nil, err
	}

	cached := s.storeClauses(ctx, req.IngestionID, clauses)
	s.markExtracted(ctx, req.IngestionID, len(clauses), cached)
	s.metrics.ObserveExtraction(string(source), time.Since(start).Seconds(), len(clauses))

	s.logger.Info("clause extraction completed",
		logging.String("ingestion_id", req.IngestionID),
		logging.String("contract_type", contractType.String()),
		logging.String("source", string(source)),
		logging.Int("clauses", len(clauses)),
		logging.Duration("elapsed", time.Since(start)),
	)

	return &ExtractResult{
		IngestionID:  req.IngestionID,
		ContractType: contractType,
		Clauses:      clauses,
		Source:       source,
	}, nil
}

// resolveContent returns the document content and the file name to derive
// the format hint from.  Inline content wins; otherwise the ingestion record
// supplies either stored content or an object-storage reference.
func (s *Service) resolveContent(ctx context.Context, req ExtractRequest) (string, string, error) {
	if strings.TrimSpace(req.Content) != "" {
		return req.Content, req.FileName, nil
	}

	if req.IngestionID == "" || s.ingestions == nil {
		return "", "", errors.MissingContent("no content and no ingestion reference supplied")
	}

	rec, err := s.ingestions.Get(ctx, req.IngestionID)
	if err != nil {
		return "", "", errors.Wrap(err, errors.ErrCodeIngestionNotFound, "failed to load ingestion record").
			WithDetail(req.IngestionID)
	}

	fileName := req.FileName
	if fileName == "" {
		fileName = rec.FileName
	}

	if strings.TrimSpace(rec.Content) != "" {
		return rec.Content, fileName, nil
	}

	if rec.StoragePath != "" && s.fetcher != nil {
		raw, err := s.fetcher.Fetch(ctx, rec.StorageBucket, rec.StoragePath)
		if err != nil {
			return "", "", errors.Wrap(err, errors.ErrCodeDocumentFetchFailed, "failed to fetch document from storage").
				WithDetail(rec.StoragePath)
		}
		return string(raw), fileName, nil
	}

	return "", "", errors.MissingContent("ingestion record has neither content nor a storage reference").
		WithDetail(req.IngestionID)
}

// decodeAndNormalize turns raw content into normalized plain text, rejecting
// documents that normalize to nothing.
func (s *Service) decodeAndNormalize(content, fileName string) (string, error) {
	raw, format, enveloped, err := document.DecodeEnvelope(content)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeContentDecodeFailed, "failed to decode content envelope")
	}
	hint := format
	if !enveloped {
		hint = strings.TrimPrefix(strings.ToLower(filepath.Ext(fileName)), ".")
	}

	text := document.Decode(raw, hint)
	normalized := document.Normalize(text)
	if normalized == "" {
		return "", errors.EmptyInput("document text is empty after decoding and normalization")
	}
	return normalized, nil
}

// storeClauses writes the clause set to the cache, best-effort.  Returns
// whether the write succeeded, for the ingestion record's clausesCached flag.
func (s *Service) storeClauses(ctx context.Context, ingestionID string, clauses []contract.Clause) bool {
	if ingestionID == "" || s.cache == nil {
		return false
	}
	if err := s.cache.Set(ctx, ingestionID, clauses); err != nil {
		s.logger.Warn("failed to cache extracted clause set",
			logging.String("ingestion_id", ingestionID),
			logging.Err(err),
		)
		return false
	}
	return true
}

func (s *Service) markExtracted(ctx context.Context, ingestionID string, clauseCount int, cached bool) {
	if ingestionID == "" || s.ingestions == nil {
		return
	}
	if err := s.ingestions.MarkExtracted(ctx, ingestionID, clauseCount, cached); err != nil {
		s.logger.Warn("failed to mark ingestion as extracted",
			logging.String("ingestion_id", ingestionID),
			logging.Err(err),
		)
	}
}

// markFailed records the failure reason on the ingestion record, except for
// input errors, which reflect the request rather than the document.
func (s *Service) markFailed(ctx context.Context, ingestionID string, cause error) {
	if ingestionID == "" || s.ingestions == nil || errors.IsInputError(cause) {
		return
	}
	if err := s.ingestions.MarkFailed(ctx, ingestionID, cause.Error()); err != nil {
		s.logger.Warn("failed to mark ingestion as failed",
			logging.String("ingestion_id", ingestionID),
			logging.Err(err),
		)
	}
}

// CoverageRequest carries the inputs of a coverage analysis.
type CoverageRequest struct {
	// PlaybookKey selects the playbook: canonical key, short alias, or
	// display name.  Empty falls back to the registry baseline.
	PlaybookKey string

	// GoverningLaw and Jurisdiction are free-text inputs for region
	// resolution; both may be empty.
	GoverningLaw string
	Jurisdiction string

	// Clauses is the extracted clause set under review.
	Clauses []contract.Clause

	// RawContent is the full normalized document text, used for red-flag
	// detection outside clause boundaries.
	RawContent string
}

// CoverageResult is the outcome of a coverage analysis: the scored report
// plus region-substituted negotiation guidance.
type CoverageResult struct {
	PlaybookKey         string                   `json:"playbookKey"`
	Report              *contract.CoverageReport `json:"report"`
	Region              *contract.RegionContext  `json:"region"`
	NegotiationGuidance []string                 `json:"negotiationGuidance"`
	DraftingTone        string                   `json:"draftingTone"`
}

// AnalyzeCoverage scores a clause set against a playbook and returns the
// report together with guidance localized for the resolved region.  The
// region is resolved once per call, never per clause.
func (s *Service) AnalyzeCoverage(ctx context.Context, req CoverageRequest) (*CoverageResult, error) {
	pb, ok := s.registry.Resolve(req.PlaybookKey)
	if !ok {
		if strings.TrimSpace(req.PlaybookKey) != "" {
			return nil, errors.New(errors.ErrCodePlaybookNotFound, "no playbook matches the requested contract type").
				WithDetail(req.PlaybookKey)
		}
		pb = s.registry.ResolveOrDefault(req.PlaybookKey)
	}

	rc := region.Resolve(req.GoverningLaw, req.Jurisdiction)
	report := coverage.Evaluate(pb, req.Clauses, req.RawContent)
	guidance := region.SubstituteAll(pb.NegotiationGuidance, rc)

	s.metrics.ObserveCoverage(pb.Key, report.CoverageScore)

	s.logger.Info("coverage analysis completed",
		logging.String("playbook", pb.Key),
		logging.String("region", rc.RegionKey),
		logging.Float64("score", report.CoverageScore),
		logging.Int("clauses", len(req.Clauses)),
	)

	return &CoverageResult{
		PlaybookKey:         pb.Key,
		Report:              report,
		Region:              rc,
		NegotiationGuidance: guidance,
		DraftingTone:        region.Substitute(pb.DraftingTone, rc),
	}, nil
}

// ResolveRegion maps free-text governing-law and jurisdiction input to the
// jurisdiction vocabulary used for guidance substitution.
func (s *Service) ResolveRegion(governingLaw, jurisdiction string) *contract.RegionContext {
	return region.Resolve(governingLaw, jurisdiction)
}

// BuildContextDigest selects bounded clause excerpts for the playbook's
// anchors, for use in downstream review prompts.
func (s *Service) BuildContextDigest(playbookKey string, clauses []contract.Clause) ([]coverage.DigestEntry, error) {
	pb, ok := s.registry.Resolve(playbookKey)
	if !ok {
		if strings.TrimSpace(playbookKey) != "" {
			return nil, errors.New(errors.ErrCodePlaybookNotFound, "no playbook matches the requested contract type").
				WithDetail(playbookKey)
		}
		pb = s.registry.ResolveOrDefault(playbookKey)
	}
	return coverage.BuildDigest(pb, clauses, s.digestOpts), nil
}
