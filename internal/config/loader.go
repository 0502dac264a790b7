package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all engine settings.
const envPrefix = "CLAUSE"

// settingKeys lists every configuration key.  Viper's Unmarshal only sees
// environment values for keys it knows about, so each key is bound explicitly;
// AutomaticEnv alone is not enough.
var settingKeys = []string{
	"database.host", "database.port", "database.user", "database.password",
	"database.db_name", "database.ssl_mode", "database.max_conns",
	"database.min_conns", "database.conn_max_lifetime", "database.conn_max_idle_time",
	"redis.addr", "redis.password", "redis.db", "redis.pool_size",
	"redis.min_idle_conns", "redis.dial_timeout", "redis.read_timeout",
	"redis.write_timeout", "redis.default_ttl", "redis.ttl_jitter", "redis.key_prefix",
	"minio.endpoint", "minio.access_key", "minio.secret_key", "minio.bucket", "minio.use_ssl",
	"extraction.strategy_timeout",
	"retriever.max_per_anchor", "retriever.max_total", "retriever.excerpt_length",
	"log.level", "log.format", "log.output_paths",
	"metrics.enabled", "metrics.namespace",
}

// newViper builds a pre-configured Viper instance with the engine's standard
// settings: YAML file type, CLAUSE_ env prefix, env bindings for every known
// key, and a key replacer that maps "." → "_" so that nested keys like
// "redis.addr" resolve to "CLAUSE_REDIS_ADDR".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range settingKeys {
		v.BindEnv(key) //nolint:errcheck // only errors on zero arguments
	}
	return v
}

// Load reads the YAML file at configPath, merges any CLAUSE_* environment
// variable overrides, applies defaults for unset fields, and validates the
// result.  It returns a fully-populated *Config or a descriptive error.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from CLAUSE_* environment variables,
// with no config file required.  This is the preferred loading strategy for
// containerised deployments.
//
// Environment variable naming convention:
//
//	CLAUSE_<SECTION>_<FIELD>   e.g.  CLAUSE_DATABASE_HOST, CLAUSE_REDIS_ADDR
func LoadFromEnv() (*Config, error) {
	v := newViper()
	// No config file — rely solely on env vars and defaults.
	return unmarshalAndFinalize(v)
}

// unmarshalAndFinalize unmarshals viper state into a Config struct, applies
// defaults, and validates the result.
func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}

// Default returns a Config populated entirely from defaults.  Useful for
// tests and for embedding callers that configure the engine in code.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	// Defaults include placeholder credentials; skip Validate so callers can
	// fill in the required fields afterwards.
	cfg.Database.User = "postgres"
	return cfg
}
