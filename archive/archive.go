// Package archive copies downloaded videos to S3-compatible object storage.
package archive

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	"texttovideo/config"
)

// ObjectStore is the subset of S3 the archiver uses
type ObjectStore interface {
	Put(ctx context.Context, bucket, key string, body io.Reader, contentType string) error
	Exists(ctx context.Context, bucket, key string) (bool, error)
}

// Archiver uploads finished videos under bucket/prefix/<job id>/<file name>
type Archiver struct {
	store  ObjectStore
	bucket string
	prefix string
}

// New creates an archiver writing into bucket under prefix
func New(store ObjectStore, bucket, prefix string) *Archiver {
	return &Archiver{
		store:  store,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

// Key returns the object key for a job's video file
func (a *Archiver) Key(jobID, localPath string) string {
	return path.Join(a.prefix, jobID, filepath.Base(localPath))
}

// Archive uploads the file at localPath and returns its s3:// location.
// An object already present under the same key is not uploaded again.
func (a *Archiver) Archive(ctx context.Context, jobID, localPath string) (string, error) {
	key := a.Key(jobID, localPath)
	location := fmt.Sprintf("s3://%s/%s", a.bucket, key)

	exists, err := a.store.Exists(ctx, a.bucket, key)
	if err != nil {
		return "", fmt.Errorf("failed to check %s: %w", location, err)
	}
	if exists {
		log.Printf("♻️  Already archived: %s", location)
		return location, nil
	}

	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open video: %w", err)
	}
	defer f.Close()

	if err := a.store.Put(ctx, a.bucket, key, f, "video/mp4"); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", location, err)
	}

	log.Printf("☁️  Archived video to %s", location)
	return location, nil
}

// FromConfig builds an archiver from S3 settings. It returns nil when no
// bucket is configured, which turns archiving off.
func FromConfig(ctx context.Context, cfg config.Config) (*Archiver, error) {
	if cfg.S3Bucket == "" {
		return nil, nil
	}

	store, err := NewS3(ctx, S3Config{
		Region:       cfg.S3Region,
		Profile:      cfg.S3Profile,
		UsePathStyle: cfg.S3UsePathStyle,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	log.Printf("☁️  Archiving videos to s3://%s/%s", cfg.S3Bucket, strings.Trim(cfg.S3Prefix, "/"))
	return New(store, cfg.S3Bucket, cfg.S3Prefix), nil
}
