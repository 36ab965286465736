package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"LoveAI/backend/go/pkg/logger"

	"github.com/minio/minio-go/v7"
)

const (
	// photoBucket is the MinIO bucket holding prospect photos.
	photoBucket = "loveai-prospect-photos"
)

// PhotoStore uploads and removes prospect photos in MinIO. Only the object
// path is stored on the prospect document; clients fetch the bytes through
// the journal service, which keeps the bucket private.
type PhotoStore struct {
	client *minio.Client
	logger *logger.Logger
}

// NewPhotoStore creates a new PhotoStore.
func NewPhotoStore(client *minio.Client, logger *logger.Logger) *PhotoStore {
	return &PhotoStore{client: client, logger: logger}
}

// Upload stores a photo for a prospect and returns its object path. A
// timestamp in the object name keeps stale CDN/browser caches from serving
// the previous photo after a replacement.
func (p *PhotoStore) Upload(ctx context.Context, userID, prospectID string, r io.Reader, size int64, contentType string) (string, error) {
	if err := p.ensureBucketExists(ctx); err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("prospects/%s/%s/photo_%d.jpg", userID, prospectID, time.Now().Unix())

	_, err := p.client.PutObject(ctx, photoBucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to put photo to MinIO: %w", err)
	}

	p.logger.Info(fmt.Sprintf("Uploaded prospect photo. Object name: %s", objectName))
	return objectName, nil
}

// Get streams the photo stored at the given object path.
func (p *PhotoStore) Get(ctx context.Context, objectName string) (io.ReadCloser, error) {
	obj, err := p.client.GetObject(ctx, photoBucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get photo from MinIO: %w", err)
	}
	return obj, nil
}

// Delete removes the photo stored at the given object path. Deleting a
// missing object is not an error.
func (p *PhotoStore) Delete(ctx context.Context, objectName string) error {
	if objectName == "" {
		return nil
	}
	err := p.client.RemoveObject(ctx, photoBucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to remove photo from MinIO: %w", err)
	}
	return nil
}

// DeleteAllForProspect removes every photo ever uploaded for a prospect.
// Used when a prospect is hard-deleted.
func (p *PhotoStore) DeleteAllForProspect(ctx context.Context, userID, prospectID string) error {
	prefix := fmt.Sprintf("prospects/%s/%s/", userID, prospectID)
	for obj := range p.client.ListObjects(ctx, photoBucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return fmt.Errorf("failed to list photos under %s: %w", prefix, obj.Err)
		}
		if err := p.client.RemoveObject(ctx, photoBucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("failed to remove photo %s: %w", obj.Key, err)
		}
	}
	return nil
}

// OwnedBy reports whether an object path belongs to the given user. Handlers
// use this to stop one user fetching another user's photos by guessing keys.
func OwnedBy(objectName, userID string) bool {
	return strings.HasPrefix(objectName, "prospects/"+userID+"/")
}

// ensureBucketExists checks that the photo bucket exists, creating it if not.
func (p *PhotoStore) ensureBucketExists(ctx context.Context) error {
	found, err := p.client.BucketExists(ctx, photoBucket)
	if err != nil {
		return fmt.Errorf("failed to check if bucket '%s' exists: %w", photoBucket, err)
	}
	if !found {
		p.logger.Info(fmt.Sprintf("Bucket '%s' not found, creating it.", photoBucket))
		if err = p.client.MakeBucket(ctx, photoBucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket '%s': %w", photoBucket, err)
		}
	}
	return nil
}
