package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/paperclip/format"
)

// S3Config holds the connection settings for an S3-compatible store.
type S3Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	UseSSL          bool

	// Bucket receives all attachments; Prefix optionally namespaces them
	// within the bucket.
	Bucket string
	Prefix string
}

// S3Store keeps attachments in S3-compatible object storage under
// <prefix>/<ref>/<name>.
type S3Store struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewS3Store connects to the configured endpoint and returns a store.
func NewS3Store(cfg S3Config) (*S3Store, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("store: endpoint is required")
	}
	if cfg.AccessKeyID == "" {
		return nil, errors.New("store: access key ID is required")
	}
	if cfg.SecretAccessKey == "" {
		return nil, errors.New("store: secret access key is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("store: bucket is required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("store: creating S3 client for endpoint %s: %w", cfg.Endpoint, err)
	}

	return &S3Store{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// contentType maps an attachment kind to its MIME type.
func contentType(k format.Kind) string {
	switch k {
	case format.PDF:
		return "application/pdf"
	case format.PNG:
		return "image/png"
	case format.TIFF:
		return "image/tiff"
	default:
		return "application/octet-stream"
	}
}

// Put uploads the file at srcPath under name and removes the local file
// on success.
func (s *S3Store) Put(ctx context.Context, srcPath, name string) (Attachment, error) {
	name = norm.NFC.String(filepath.Base(name))
	if name == "" || name == "." {
		return Attachment{}, fmt.Errorf("store: invalid attachment name %q", name)
	}

	ref := uuid.NewString()
	kind := format.Detect(name)
	key := s.key(ref, name)

	info, err := s.client.FPutObject(ctx, s.bucket, key, srcPath, minio.PutObjectOptions{
		ContentType: contentType(kind),
	})
	if err != nil {
		return Attachment{}, fmt.Errorf("store: failed to upload %s: %w", key, err)
	}

	if err := os.Remove(srcPath); err != nil {
		return Attachment{}, fmt.Errorf("store: uploaded but failed to remove source: %w", err)
	}

	return Attachment{
		Ref:      ref,
		Name:     name,
		Kind:     kind,
		Size:     info.Size,
		StoredAt: time.Now().UTC(),
	}, nil
}

// Open returns the content of the attachment stored under ref.
func (s *S3Store) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	key, err := s.find(ctx, ref)
	if err != nil {
		return nil, err
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("store: failed to get %s: %w", key, err)
	}
	return obj, nil
}

// Remove deletes the attachment stored under ref.
func (s *S3Store) Remove(ctx context.Context, ref string) error {
	key, err := s.find(ctx, ref)
	if err != nil {
		return err
	}

	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("store: failed to remove %s: %w", key, err)
	}
	return nil
}

// find lists the objects under ref's key prefix; an attachment is a
// single object.
func (s *S3Store) find(ctx context.Context, ref string) (string, error) {
	prefix := s.key(ref, "") + "/"
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return "", fmt.Errorf("store: failed to list %s: %w", prefix, obj.Err)
		}
		return obj.Key, nil
	}
	return "", fmt.Errorf("store: %q: %w", ref, ErrNotFound)
}

func (s *S3Store) key(ref, name string) string {
	return path.Join(s.prefix, ref, name)
}
