// Package config defines the configuration structures for the clause-engine
// library.  No I/O or parsing logic lives here — only plain data types and
// validation.
package config

import (
	"fmt"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// DatabaseConfig holds PostgreSQL connection parameters for the ingestion
// record store.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"db_name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxConns        int           `mapstructure:"max_conns"`
	MinConns        int           `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// DSN renders the pgx connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// RedisConfig holds Redis connection and clause-cache parameters.
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`

	// DefaultTTL is the clause-cache entry lifetime; a random jitter of up to
	// TTLJitter is added per write so entries do not expire in lockstep.
	DefaultTTL time.Duration `mapstructure:"default_ttl"`
	TTLJitter  time.Duration `mapstructure:"ttl_jitter"`
	KeyPrefix  string        `mapstructure:"key_prefix"`
}

// MinIOConfig holds MinIO / S3-compatible object-storage parameters for
// fetching uploaded contract documents.
type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// ExtractionConfig holds clause-extraction tunables.
type ExtractionConfig struct {
	// StrategyTimeout bounds each external extraction attempt; on expiry the
	// deterministic fallback takes over.
	StrategyTimeout time.Duration `mapstructure:"strategy_timeout"`
}

// RetrieverConfig bounds the context digest built for review prompts.
type RetrieverConfig struct {
	MaxPerAnchor  int `mapstructure:"max_per_anchor"`
	MaxTotal      int `mapstructure:"max_total"`
	ExcerptLength int `mapstructure:"excerpt_length"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level       string   `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format      string   `mapstructure:"format"` // "json" | "console"
	OutputPaths []string `mapstructure:"output_paths"`
}

// MetricsConfig holds Prometheus instrumentation parameters.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure for the engine.  Every
// infrastructure adapter and engine component reads its settings from the
// relevant sub-struct.
type Config struct {
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	MinIO      MinIOConfig      `mapstructure:"minio"`
	Extraction ExtractionConfig `mapstructure:"extraction"`
	Retriever  RetrieverConfig  `mapstructure:"retriever"`
	Log        LogConfig        `mapstructure:"log"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of the fully-populated Config.  It
// returns the first error encountered; callers should treat any error as
// fatal and refuse to construct the engine.
func (c *Config) Validate() error {
	// Database
	if c.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("config: database.port %d is out of range [1, 65535]", c.Database.Port)
	}
	if c.Database.User == "" {
		return fmt.Errorf("config: database.user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("config: database.db_name is required")
	}
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("config: database.max_conns must be ≥ 1, got %d", c.Database.MaxConns)
	}

	// Redis
	if c.Redis.Addr == "" {
		return fmt.Errorf("config: redis.addr is required")
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("config: redis.db must be ≥ 0, got %d", c.Redis.DB)
	}
	if c.Redis.DefaultTTL <= 0 {
		return fmt.Errorf("config: redis.default_ttl must be positive, got %s", c.Redis.DefaultTTL)
	}
	if c.Redis.TTLJitter < 0 {
		return fmt.Errorf("config: redis.ttl_jitter must be ≥ 0, got %s", c.Redis.TTLJitter)
	}

	// MinIO
	if c.MinIO.Endpoint == "" {
		return fmt.Errorf("config: minio.endpoint is required")
	}
	if c.MinIO.Bucket == "" {
		return fmt.Errorf("config: minio.bucket is required")
	}

	// Extraction
	if c.Extraction.StrategyTimeout <= 0 {
		return fmt.Errorf("config: extraction.strategy_timeout must be positive, got %s", c.Extraction.StrategyTimeout)
	}

	// Retriever
	if c.Retriever.MaxPerAnchor < 1 {
		return fmt.Errorf("config: retriever.max_per_anchor must be ≥ 1, got %d", c.Retriever.MaxPerAnchor)
	}
	if c.Retriever.MaxTotal < c.Retriever.MaxPerAnchor {
		return fmt.Errorf("config: retriever.max_total %d must be ≥ retriever.max_per_anchor %d",
			c.Retriever.MaxTotal, c.Retriever.MaxPerAnchor)
	}
	if c.Retriever.ExcerptLength < 1 {
		return fmt.Errorf("config: retriever.excerpt_length must be ≥ 1, got %d", c.Retriever.ExcerptLength)
	}

	// Log
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}
