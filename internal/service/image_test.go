package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/vitality/web/config"
)

type mockPutter struct {
	mock.Mock
}

func (m *mockPutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func testS3Config() *config.S3Config {
	return &config.S3Config{BucketName: "logos", PublicBaseURL: "https://cdn.example.com"}
}

func TestUploadLogo(t *testing.T) {
	putter := new(mockPutter)
	putter.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		body, _ := io.ReadAll(in.Body)
		return aws.ToString(in.Bucket) == "logos" &&
			strings.HasPrefix(aws.ToString(in.Key), "organization-logos/org-1/") &&
			strings.HasSuffix(aws.ToString(in.Key), ".png") &&
			aws.ToString(in.ContentType) == "image/png" &&
			string(body) == "png-bytes"
	})).Return(&s3.PutObjectOutput{}, nil)

	svc := NewImageService(testS3Config(), putter)
	url, err := svc.UploadLogo(context.Background(), "org-1", "logo.PNG", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "https://cdn.example.com/organization-logos/org-1/"))
	putter.AssertExpectations(t)
}

func TestUploadLogoKeepsJPEGExtension(t *testing.T) {
	putter := new(mockPutter)
	putter.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return strings.HasSuffix(aws.ToString(in.Key), ".jpeg")
	})).Return(&s3.PutObjectOutput{}, nil)

	_, err := NewImageService(testS3Config(), putter).UploadLogo(context.Background(), "o", "photo.jpeg", "image/jpeg; charset=binary", strings.NewReader("x"))
	require.NoError(t, err)
	putter.AssertExpectations(t)
}

func TestUploadLogoRejectsNonImages(t *testing.T) {
	putter := new(mockPutter)

	_, err := NewImageService(testS3Config(), putter).UploadLogo(context.Background(), "o", "notes.txt", "text/plain", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUnsupportedImage)
	putter.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything)
}

func TestUploadLogoS3Failure(t *testing.T) {
	putter := new(mockPutter)
	putter.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	_, err := NewImageService(testS3Config(), putter).UploadLogo(context.Background(), "o", "l.webp", "image/webp", strings.NewReader("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upload logo to S3")
}
