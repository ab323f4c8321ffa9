package media

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/brightpaw/vetcare-platform/pkg/logging"
)

// S3API is the subset of the S3 client used by Store.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// File is an upload payload with its original filename.
type File struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// Store keeps provider media (profile photos, certificates) in S3.
// If bucket is empty all operations are no-ops, so the platform can run
// without object storage in development.
type Store struct {
	bucket   string
	baseURL  string
	s3Client S3API
	logger   *logging.Logger
	now      func() time.Time
}

// NewStore creates a media Store. baseURL is the public prefix objects are
// served from; when empty the virtual-hosted S3 URL is used.
func NewStore(s3Client S3API, bucket, region, baseURL string, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Default()
	}
	if baseURL == "" && bucket != "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}
	return &Store{
		bucket:   bucket,
		baseURL:  strings.TrimRight(baseURL, "/"),
		s3Client: s3Client,
		logger:   logger,
		now:      time.Now,
	}
}

// Enabled returns true if media storage is configured.
func (s *Store) Enabled() bool {
	return s != nil && s.bucket != "" && s.s3Client != nil
}

// UploadProfilePhoto stores a provider profile photo and returns its public URL.
func (s *Store) UploadProfilePhoto(ctx context.Context, providerID string, f File) (string, error) {
	if !s.Enabled() {
		return "", nil
	}
	key := fmt.Sprintf("providers/%s/profile_%d", providerID, s.now().UTC().UnixMilli())
	if err := s.put(ctx, key, f); err != nil {
		return "", err
	}
	return s.URL(key), nil
}

// UploadCertificates stores certificate documents for a provider and returns
// their public URLs in input order.
func (s *Store) UploadCertificates(ctx context.Context, providerID string, files []File) ([]string, error) {
	if !s.Enabled() || len(files) == 0 {
		return nil, nil
	}
	ts := s.now().UTC().UnixMilli()
	urls := make([]string, 0, len(files))
	for i, f := range files {
		key := fmt.Sprintf("providers/%s/certificates/%d_%d_%s", providerID, ts, i, sanitizeFilename(f.Name))
		if err := s.put(ctx, key, f); err != nil {
			return nil, err
		}
		urls = append(urls, s.URL(key))
	}
	return urls, nil
}

// Delete removes an object by its public URL. Unknown URLs are ignored.
func (s *Store) Delete(ctx context.Context, url string) error {
	if !s.Enabled() {
		return nil
	}
	key, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok {
		s.logger.Warn("media delete skipped, url outside bucket", "url", url)
		return nil
	}
	_, err := s.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("media: s3 delete %s: %w", key, err)
	}
	return nil
}

// URL returns the public URL for an object key.
func (s *Store) URL(key string) string {
	return s.baseURL + "/" + key
}

func (s *Store) put(ctx context.Context, key string, f File) error {
	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        f.Body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("media: s3 put %s: %w", key, err)
	}
	s.logger.Info("uploaded media object", "key", key, "content_type", contentType)
	return nil
}

// sanitizeFilename keeps object keys URL-safe. Anything outside a small
// allowlist collapses to underscores.
func sanitizeFilename(name string) string {
	if name == "" {
		return "file"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
