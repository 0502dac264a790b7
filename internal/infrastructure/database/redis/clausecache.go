// Package redis implements the clause-set cache on Redis.  Cached clause sets
// are keyed by ingestion ID; a hit lets repeat reviews of the same document
// skip decoding and extraction entirely.
package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/lexatic/clause-engine/internal/config"
	"github.com/lexatic/clause-engine/internal/infrastructure/monitoring/logging"
	"github.com/lexatic/clause-engine/pkg/errors"
	"github.com/lexatic/clause-engine/pkg/types/contract"
)

// ErrCacheMiss is returned by Get when no clause set is cached for the key.
var ErrCacheMiss = errors.New(errors.ErrCodeNotFound, "clause cache miss")

// Serializer converts clause sets to and from their cached byte form.
type Serializer interface {
	Marshal(v interface{}) ([]byte, error)
	Unmarshal(data []byte, v interface{}) error
}

type jsonSerializer struct{}

func (jsonSerializer) Marshal(v interface{}) ([]byte, error)      { return json.Marshal(v) }
func (jsonSerializer) Unmarshal(data []byte, v interface{}) error { return json.Unmarshal(data, v) }

// ClauseCache stores extracted clause sets in Redis with a jittered TTL.
type ClauseCache struct {
	rdb        redis.UniversalClient
	logger     logging.Logger
	prefix     string
	defaultTTL time.Duration
	ttlJitter  time.Duration
	serializer Serializer
	group      singleflight.Group
}

// CacheOption configures a ClauseCache.
type CacheOption func(*ClauseCache)

// WithSerializer replaces the default JSON serializer.
func WithSerializer(s Serializer) CacheOption {
	return func(c *ClauseCache) { c.serializer = s }
}

// NewClauseCache constructs a ClauseCache from the Redis section of the
// engine config.  The connection is not verified here; the first operation
// surfaces connectivity problems.
func NewClauseCache(cfg config.RedisConfig, log logging.Logger, opts ...CacheOption) *ClauseCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
	return newClauseCache(rdb, cfg, log, opts...)
}

// NewClauseCacheWithClient wraps an existing client, used by tests running
// against miniredis or a shared pool.
func NewClauseCacheWithClient(rdb redis.UniversalClient, cfg config.RedisConfig, log logging.Logger, opts ...CacheOption) *ClauseCache {
	return newClauseCache(rdb, cfg, log, opts...)
}

func newClauseCache(rdb redis.UniversalClient, cfg config.RedisConfig, log logging.Logger, opts ...CacheOption) *ClauseCache {
	c := &ClauseCache{
		rdb:        rdb,
		logger:     log,
		prefix:     cfg.KeyPrefix,
		defaultTTL: cfg.DefaultTTL,
		ttlJitter:  cfg.TTLJitter,
		serializer: jsonSerializer{},
	}
	if c.prefix == "" {
		c.prefix = config.DefaultCacheKeyPrefix
	}
	if c.defaultTTL <= 0 {
		c.defaultTTL = config.DefaultCacheTTL
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *ClauseCache) fullKey(ingestionID string) string {
	return c.prefix + ":" + ingestionID
}

// jitterTTL adds up to ttlJitter of random skew so entries written in a batch
// do not expire in lockstep.
func (c *ClauseCache) jitterTTL() time.Duration {
	if c.ttlJitter <= 0 {
		return c.defaultTTL
	}
	return c.defaultTTL + time.Duration(rand.Int63n(int64(c.ttlJitter)))
}

// Get returns the cached clause set for an ingestion, or ErrCacheMiss.
func (c *ClauseCache) Get(ctx context.Context, ingestionID string) ([]contract.Clause, error) {
	data, err := c.rdb.Get(ctx, c.fullKey(ingestionID)).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCacheError, "failed to read clause cache")
	}
	var clauses []contract.Clause
	if err := c.serializer.Unmarshal(data, &clauses); err != nil {
		// A corrupt entry behaves like a miss; the caller re-extracts and
		// overwrites it.
		c.logger.Warn("discarding corrupt clause cache entry",
			logging.String("ingestion_id", ingestionID),
			logging.Err(err),
		)
		return nil, ErrCacheMiss
	}
	return clauses, nil
}

// Set stores a clause set under the ingestion key with a jittered TTL.
func (c *ClauseCache) Set(ctx context.Context, ingestionID string, clauses []contract.Clause) error {
	data, err := c.serializer.Marshal(clauses)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to serialize clause set")
	}
	if err := c.rdb.Set(ctx, c.fullKey(ingestionID), data, c.jitterTTL()).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "failed to write clause cache")
	}
	return nil
}

// Delete removes the cached clause set for an ingestion; used by force
// refresh before re-extraction.
func (c *ClauseCache) Delete(ctx context.Context, ingestionID string) error {
	if err := c.rdb.Del(ctx, c.fullKey(ingestionID)).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "failed to delete clause cache entry")
	}
	return nil
}

// GetOrLoad returns the cached clause set or runs loader to produce it,
// collapsing concurrent loads for the same ingestion into one via
// singleflight.  A failed cache write after a successful load is logged and
// swallowed; the loaded clauses are still returned.
func (c *ClauseCache) GetOrLoad(ctx context.Context, ingestionID string, loader func(ctx context.Context) ([]contract.Clause, error)) ([]contract.Clause, bool, error) {
	if clauses, err := c.Get(ctx, ingestionID); err == nil {
		return clauses, true, nil
	}

	v, err, _ := c.group.Do(ingestionID, func() (interface{}, error) {
		clauses, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		if setErr := c.Set(ctx, ingestionID, clauses); setErr != nil {
			c.logger.Warn("failed to cache loaded clause set",
				logging.String("ingestion_id", ingestionID),
				logging.Err(setErr),
			)
		}
		return clauses, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.([]contract.Clause), false, nil
}

// Close releases the underlying client's connections.
func (c *ClauseCache) Close() error {
	type closer interface{ Close() error }
	if cl, ok := c.rdb.(closer); ok {
		return cl.Close()
	}
	return nil
}
