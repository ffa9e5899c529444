package uploads

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MediaStore is the self-hosted variant of the asset-host boundary: uploads
// land in a MinIO bucket and are addressed by a public base URL.
type MediaStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewMediaStore creates the store and ensures the bucket exists.
func NewMediaStore(cfg *MediaConfig) (*MediaStore, error) {
	if cfg == nil || cfg.Endpoint == "" {
		return nil, fmt.Errorf("media store config missing")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	s := &MediaStore{client: mc, bucket: cfg.Bucket, baseURL: strings.TrimRight(cfg.PublicBaseURL, "/")}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mc.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		// tolerate pre-existing buckets
		exist, xerr := mc.BucketExists(ctx, s.bucket)
		if xerr != nil || !exist {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}
	return s, nil
}

// Upload stores the file under a generated key and returns its public URL.
// Satisfies the same contract as the remote-host Client, so the admin upload
// route can use either.
func (s *MediaStore) Upload(ctx context.Context, filename string, r io.Reader, size int64, resourceKind string) (string, error) {
	if resourceKind == "" || resourceKind == "auto" {
		resourceKind = "image"
	}
	key := resourceKind + "/" + newObjectID() + sanitizeExt(filename)
	opts := minio.PutObjectOptions{ContentType: contentTypeFor(filename)}
	if _, err := s.client.PutObject(ctx, s.bucket, key, r, size, opts); err != nil {
		return "", &UploadError{Message: err.Error()}
	}
	if s.baseURL != "" {
		return s.baseURL + "/" + s.bucket + "/" + key, nil
	}
	// fall back to a long-lived presigned URL when no public base is mapped
	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, key, 7*24*time.Hour, url.Values{})
	if err != nil {
		return "", &UploadError{Message: err.Error()}
	}
	return presigned.String(), nil
}

func newObjectID() string {
	buf := make([]byte, 12)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

func sanitizeExt(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg", ".pdf", ".mp4":
		return ext
	default:
		return ""
	}
}

func contentTypeFor(filename string) string {
	switch strings.ToLower(path.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	case ".pdf":
		return "application/pdf"
	case ".mp4":
		return "video/mp4"
	default:
		return "application/octet-stream"
	}
}
