package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscreds "github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/habariblog/core/internal/config"
	"go.uber.org/zap"
)

// ErrDisabled is returned when object storage is not configured.
var ErrDisabled = errors.New("media storage is not configured")

var allowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// Service stores featured-image assets in S3-compatible object storage.
type Service struct {
	cfg    config.MediaConfig
	client *s3.Client
	logger *zap.Logger
}

// NewService builds the S3 client from media config. A disabled config
// yields a service whose operations return ErrDisabled.
func NewService(cfg config.MediaConfig, logger *zap.Logger) *Service {
	s := &Service{cfg: cfg, logger: logger}
	if !cfg.Enable {
		return s
	}

	options := s3.Options{
		Region: cfg.Region,
		Credentials: aws.NewCredentialsCache(
			awscreds.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
		UsePathStyle: cfg.PathStyleAccess,
	}
	if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
		options.BaseEndpoint = aws.String(endpoint)
	}
	s.client = s3.New(options)
	return s
}

// Enabled reports whether uploads can be accepted.
func (s *Service) Enabled() bool { return s.client != nil }

// Upload stores an image under a generated key and returns (key, url).
func (s *Service) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, string, error) {
	if s.client == nil {
		return "", "", ErrDisabled
	}

	ext := strings.ToLower(path.Ext(filename))
	expected, ok := allowedExtensions[ext]
	if !ok {
		return "", "", fmt.Errorf("unsupported image format %q", ext)
	}
	if contentType == "" {
		contentType = expected
	}

	now := time.Now()
	key := fmt.Sprintf("featured/%d/%02d/%s%s", now.Year(), now.Month(), uuid.New().String(), ext)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", "", fmt.Errorf("upload object %s: %w", key, err)
	}
	return key, s.PublicURL(key), nil
}

// Delete removes a stored object. Callers treat failures as best-effort;
// the error is returned so they can log it.
func (s *Service) Delete(ctx context.Context, key string) error {
	if s.client == nil || strings.TrimSpace(key) == "" {
		return nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

// PublicURL resolves the client-facing URL for an object key.
func (s *Service) PublicURL(key string) string {
	if domain := strings.TrimRight(strings.TrimSpace(s.cfg.CustomDomain), "/"); domain != "" {
		return domain + "/" + key
	}
	if endpoint := strings.TrimRight(strings.TrimSpace(s.cfg.Endpoint), "/"); endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", endpoint, s.cfg.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}
