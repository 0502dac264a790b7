// Package minio fetches uploaded contract documents from S3-compatible
// object storage.  Ingestion records reference documents by bucket and path;
// the fetcher hands the raw bytes to the document decoder untouched.
package minio

import (
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/lexatic/clause-engine/internal/config"
	"github.com/lexatic/clause-engine/internal/infrastructure/monitoring/logging"
	"github.com/lexatic/clause-engine/pkg/errors"
)

// Fetcher implements review.DocumentFetcher on MinIO.
type Fetcher struct {
	client        *minio.Client
	logger        logging.Logger
	defaultBucket string
}

// NewFetcher constructs a Fetcher from the MinIO section of the engine
// config.  Connectivity is verified lazily on the first fetch.
func NewFetcher(cfg config.MinIOConfig, log logging.Logger) (*Fetcher, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to construct object storage client")
	}
	return &Fetcher{
		client:        client,
		logger:        log,
		defaultBucket: cfg.Bucket,
	}, nil
}

// Fetch downloads an object and returns its bytes.  An empty bucket falls
// back to the configured default bucket.
func (f *Fetcher) Fetch(ctx context.Context, bucket, path string) ([]byte, error) {
	if bucket == "" {
		bucket = f.defaultBucket
	}

	obj, err := f.client.GetObject(ctx, bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to open stored document").
			WithDetail(bucket + "/" + path)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to read stored document").
			WithDetail(bucket + "/" + path)
	}

	f.logger.Debug("fetched document from object storage",
		logging.String("bucket", bucket),
		logging.String("path", path),
		logging.Int("bytes", len(data)),
	)
	return data, nil
}
