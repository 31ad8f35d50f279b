package s3

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// PhotoArchive keeps a durable copy of listing photos in object storage.
// Messaging platforms expire file references; the archive copy is ours.
type PhotoArchive struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
}

func NewPhotoArchive(endpoint, accessKey, secretKey, bucket string, useSSL bool, logger *zap.Logger) (*PhotoArchive, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("creating minio client for %s: %w", endpoint, err)
	}

	ctx := context.Background()
	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		exists, existsErr := client.BucketExists(ctx, bucket)
		if existsErr != nil || !exists {
			return nil, fmt.Errorf("ensuring bucket %s: %w", bucket, err)
		}
	}

	return &PhotoArchive{client: client, bucket: bucket, logger: logger}, nil
}

// Archive stores one photo under the owning listing's prefix and returns the
// object URL.
func (a *PhotoArchive) Archive(ctx context.Context, listingID string, photo io.Reader, size int64) (string, error) {
	key := fmt.Sprintf("listings/%s/%s.jpg", listingID, uuid.NewString())

	info, err := a.client.PutObject(ctx, a.bucket, key, photo, size, minio.PutObjectOptions{
		ContentType: "image/jpeg",
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s to bucket %s: %w", key, a.bucket, err)
	}

	a.logger.Debug("photo archived",
		zap.String("listing_id", listingID),
		zap.String("key", info.Key),
		zap.Int64("size", info.Size))
	return fmt.Sprintf("%s/%s/%s", a.client.EndpointURL(), a.bucket, key), nil
}
