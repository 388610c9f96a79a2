package ingest

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"integrity-gateway/internal/model"
)

// BucketConfig holds S3-compatible bucket settings
type BucketConfig struct {
	Endpoint  string // Server endpoint (e.g., localhost:9000)
	AccessKey string // Access key (username)
	SecretKey string // Secret key (password)
	Bucket    string // Bucket to ingest from
	Prefix    string // Optional object key prefix
	Region    string // Region (default: us-east-1)
	Secure    bool   // Use HTTPS
}

// BucketIngestor lists objects in an S3-compatible bucket and presents them
// as sources for the dispatcher, so bucket contents flow through the same
// pipeline as direct uploads. Kinds derive from object key extensions, so
// unsupported objects are simply ignored downstream.
type BucketIngestor struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewBucketIngestor creates an ingestor over the configured bucket.
func NewBucketIngestor(config *BucketConfig) (*BucketIngestor, error) {
	if config.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}
	if config.Bucket == "" {
		return nil, fmt.Errorf("bucket is required")
	}

	client, err := minio.New(config.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.AccessKey, config.SecretKey, ""),
		Secure: config.Secure,
		Region: config.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	return &BucketIngestor{
		client: client,
		bucket: config.Bucket,
		prefix: config.Prefix,
	}, nil
}

// ListSources downloads every object under the configured prefix and wraps
// each as a Source in listing order.
func (b *BucketIngestor) ListSources(ctx context.Context) ([]model.Source, error) {
	var sources []model.Source

	objects := b.client.ListObjects(ctx, b.bucket, minio.ListObjectsOptions{
		Prefix:    b.prefix,
		Recursive: true,
	})
	for object := range objects {
		if object.Err != nil {
			return nil, fmt.Errorf("failed to list bucket %s: %w", b.bucket, object.Err)
		}
		payload, err := b.readObject(ctx, object.Key)
		if err != nil {
			return nil, err
		}
		sources = append(sources, model.NewFileSource(object.Key, payload))
	}

	return sources, nil
}

func (b *BucketIngestor) readObject(ctx context.Context, key string) ([]byte, error) {
	object, err := b.client.GetObject(ctx, b.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	defer object.Close()

	payload, err := io.ReadAll(object)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}
	return payload, nil
}
