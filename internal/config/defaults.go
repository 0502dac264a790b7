package config

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultDBHost     = "localhost"
	DefaultDBPort     = 5432
	DefaultDBName     = "clause_engine"
	DefaultDBMaxConns = 10

	DefaultRedisAddr      = "localhost:6379"
	DefaultCacheTTL       = 24 * time.Hour
	DefaultCacheTTLJitter = 30 * time.Minute
	DefaultCacheKeyPrefix = "clauses"

	DefaultMinIOEndpoint = "localhost:9000"
	DefaultMinIOBucket   = "contract-documents"

	DefaultStrategyTimeout = 30 * time.Second

	DefaultRetrieverMaxPerAnchor  = 3
	DefaultRetrieverMaxTotal      = 12
	DefaultRetrieverExcerptLength = 320

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMetricsNamespace = "clause_engine"
)

// ApplyDefaults fills every zero-value field in cfg with the engine default.
// Fields that have already been set by the caller (non-zero values) are left
// unchanged so that explicit configuration always wins.  It must run after
// unmarshalling and before Validate so defaulted fields are never seen as
// missing.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Database ──────────────────────────────────────────────────────────────
	if cfg.Database.Host == "" {
		cfg.Database.Host = DefaultDBHost
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = DefaultDBPort
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = DefaultDBName
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = DefaultDBMaxConns
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}

	// ── Redis ─────────────────────────────────────────────────────────────────
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.DefaultTTL == 0 {
		cfg.Redis.DefaultTTL = DefaultCacheTTL
	}
	if cfg.Redis.TTLJitter == 0 {
		cfg.Redis.TTLJitter = DefaultCacheTTLJitter
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = DefaultCacheKeyPrefix
	}

	// ── MinIO ─────────────────────────────────────────────────────────────────
	if cfg.MinIO.Endpoint == "" {
		cfg.MinIO.Endpoint = DefaultMinIOEndpoint
	}
	if cfg.MinIO.Bucket == "" {
		cfg.MinIO.Bucket = DefaultMinIOBucket
	}

	// ── Extraction ────────────────────────────────────────────────────────────
	if cfg.Extraction.StrategyTimeout == 0 {
		cfg.Extraction.StrategyTimeout = DefaultStrategyTimeout
	}

	// ── Retriever ─────────────────────────────────────────────────────────────
	if cfg.Retriever.MaxPerAnchor == 0 {
		cfg.Retriever.MaxPerAnchor = DefaultRetrieverMaxPerAnchor
	}
	if cfg.Retriever.MaxTotal == 0 {
		cfg.Retriever.MaxTotal = DefaultRetrieverMaxTotal
	}
	if cfg.Retriever.ExcerptLength == 0 {
		cfg.Retriever.ExcerptLength = DefaultRetrieverExcerptLength
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
}
