// Package postgres persists contract ingestion records.  The engine only
// reads records and advances their lifecycle status; record creation belongs
// to the upload path of the embedding application.
package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lexatic/clause-engine/internal/config"
	"github.com/lexatic/clause-engine/internal/infrastructure/monitoring/logging"
	"github.com/lexatic/clause-engine/internal/review"
	"github.com/lexatic/clause-engine/pkg/errors"
)

// IngestionStore implements review.IngestionStore on PostgreSQL.
type IngestionStore struct {
	pool   *pgxpool.Pool
	logger logging.Logger
}

// NewIngestionStore connects a pool according to the database config and
// verifies connectivity with a ping.
func NewIngestionStore(ctx context.Context, cfg config.DatabaseConfig, log logging.Logger) (*IngestionStore, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "invalid postgres configuration")
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = int32(cfg.MinConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}
	if cfg.ConnMaxIdleTime > 0 {
		poolCfg.MaxConnIdleTime = cfg.ConnMaxIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to create postgres pool")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "postgres connection failed")
	}

	log.Info("postgres ingestion store connected",
		logging.String("host", cfg.Host),
		logging.String("database", cfg.DBName),
	)
	return &IngestionStore{pool: pool, logger: log}, nil
}

// NewIngestionStoreWithPool wraps an existing pool, used by tests.
func NewIngestionStoreWithPool(pool *pgxpool.Pool, log logging.Logger) *IngestionStore {
	return &IngestionStore{pool: pool, logger: log}
}

const getIngestionSQL = `
SELECT id, contract_type, status, file_name,
       COALESCE(content, ''), COALESCE(storage_bucket, ''), COALESCE(storage_path, ''),
       COALESCE(governing_law, ''), clause_count, clauses_cached,
       COALESCE(failure_reason, ''), created_at, updated_at
FROM contract_ingestions
WHERE id = $1`

// Get loads one ingestion record by ID.
func (s *IngestionStore) Get(ctx context.Context, id string) (*review.Ingestion, error) {
	var rec review.Ingestion
	err := s.pool.QueryRow(ctx, getIngestionSQL, id).Scan(
		&rec.ID, &rec.ContractType, &rec.Status, &rec.FileName,
		&rec.Content, &rec.StorageBucket, &rec.StoragePath,
		&rec.GoverningLaw, &rec.ClauseCount, &rec.ClausesCached,
		&rec.FailureReason, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, errors.New(errors.ErrCodeIngestionNotFound, "ingestion record not found").WithDetail(id)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to load ingestion record")
	}
	return &rec, nil
}

const markExtractedSQL = `
UPDATE contract_ingestions
SET status = $2, clause_count = $3, clauses_cached = $4, failure_reason = NULL, updated_at = now()
WHERE id = $1`

// MarkExtracted advances a record to the extracted status.
func (s *IngestionStore) MarkExtracted(ctx context.Context, id string, clauseCount int, cached bool) error {
	tag, err := s.pool.Exec(ctx, markExtractedSQL, id, review.StatusExtracted, clauseCount, cached)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to mark ingestion as extracted")
	}
	if tag.RowsAffected() == 0 {
		return errors.New(errors.ErrCodeIngestionNotFound, "ingestion record not found").WithDetail(id)
	}
	return nil
}

const markFailedSQL = `
UPDATE contract_ingestions
SET status = $2, failure_reason = $3, updated_at = now()
WHERE id = $1`

// MarkFailed advances a record to the failed status with a reason.
func (s *IngestionStore) MarkFailed(ctx context.Context, id, reason string) error {
	tag, err := s.pool.Exec(ctx, markFailedSQL, id, review.StatusFailed, reason)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to mark ingestion as failed")
	}
	if tag.RowsAffected() == 0 {
		return errors.New(errors.ErrCodeIngestionNotFound, "ingestion record not found").WithDetail(id)
	}
	return nil
}

// Close releases the pool.
func (s *IngestionStore) Close() {
	s.pool.Close()
}
