package communication

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"

	"casemail/pkg/metrics"
)

// BlobStore keeps attachment payloads content-addressed by SHA-256, so the
// same payload delivered to several errands is stored once.
type BlobStore interface {
	Put(ctx context.Context, data []byte) (string, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

type S3BlobStore struct {
	client *minio.Client
	bucket string
}

func NewS3BlobStore(client *minio.Client, bucket string) *S3BlobStore {
	return &S3BlobStore{client: client, bucket: bucket}
}

// Put stores the payload under its content hash and returns the key.
// Uploading an already-present key is skipped.
func (s *S3BlobStore) Put(ctx context.Context, data []byte) (string, error) {
	sum := sha256.Sum256(data)
	key := "attachments/" + hex.EncodeToString(sum[:])

	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		metrics.BlobStoreRequestsTotal.WithLabelValues("put", "deduplicated").Inc()
		return key, nil
	}
	var resp minio.ErrorResponse
	if !errors.As(err, &resp) || resp.StatusCode != 404 {
		metrics.BlobStoreRequestsTotal.WithLabelValues("put", "error").Inc()
		return "", fmt.Errorf("failed to stat blob %s: %w", key, err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, key,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{SendContentMd5: true},
	)
	if err != nil {
		metrics.BlobStoreRequestsTotal.WithLabelValues("put", "error").Inc()
		return "", fmt.Errorf("failed to store blob %s: %w", key, err)
	}

	metrics.BlobStoreRequestsTotal.WithLabelValues("put", "success").Inc()
	return key, nil
}

func (s *S3BlobStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	object, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		metrics.BlobStoreRequestsTotal.WithLabelValues("get", "error").Inc()
		return nil, fmt.Errorf("failed to get blob %s: %w", key, err)
	}
	metrics.BlobStoreRequestsTotal.WithLabelValues("get", "success").Inc()
	return object, nil
}
