package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/pageza/vitality/web/config"
)

// ErrUnsupportedImage is returned for logo uploads that are not images
var ErrUnsupportedImage = errors.New("logo must be a PNG, JPEG, SVG or WebP image")

var logoExtensions = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/svg+xml": ".svg",
	"image/webp":    ".webp",
}

// ObjectPutter is the part of the S3 client used for uploads
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ImageService stores organization logos in S3
type ImageService struct {
	s3Config *config.S3Config
	client   ObjectPutter
}

// NewImageService creates a new ImageService instance. A nil client uses
// the one in s3Config.
func NewImageService(s3Config *config.S3Config, client ObjectPutter) *ImageService {
	if client == nil {
		client = s3Config.Client
	}
	return &ImageService{s3Config: s3Config, client: client}
}

// UploadLogo stores the logo of an organization and returns its public URL
func (s *ImageService) UploadLogo(ctx context.Context, orgID, filename, contentType string, body io.Reader) (string, error) {
	contentType = strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	ext, ok := logoExtensions[contentType]
	if !ok {
		return "", ErrUnsupportedImage
	}
	if contentType == "image/jpeg" && strings.EqualFold(path.Ext(filename), ".jpeg") {
		ext = ".jpeg"
	}

	key := fmt.Sprintf("organization-logos/%s/%s%s", orgID, uuid.New().String(), ext)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload logo to S3: %w", err)
	}

	return s.s3Config.PublicURL(key), nil
}
