package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"alcyxob/coach-platform/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointURL(t *testing.T) {
	assert.Equal(t, "https://minio:9000", endpointURL(config.S3Config{Endpoint: "minio:9000", UseSSL: true}))
	assert.Equal(t, "http://minio:9000", endpointURL(config.S3Config{Endpoint: "minio:9000"}))
	assert.Equal(t, "http://localhost:9000", endpointURL(config.S3Config{Endpoint: "http://localhost:9000", UseSSL: true}))
}

// Presigning is computed locally, no request reaches the endpoint.
func TestS3Storage_Presign(t *testing.T) {
	fs, err := NewS3Storage(context.Background(), config.S3Config{
		Endpoint:        "localhost:9000",
		Region:          "us-east-1",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio-secret",
		BucketName:      "feed",
	})
	require.NoError(t, err)

	put, err := fs.GeneratePresignedUploadURL(context.Background(), "posts/a.jpg", "image/jpeg", time.Minute)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(put, "http://localhost:9000/feed/posts/a.jpg?"), put)
	assert.Contains(t, put, "X-Amz-Expires=60")

	get, err := fs.GeneratePresignedDownloadURL(context.Background(), "posts/a.jpg", 0)
	require.NoError(t, err)
	assert.Contains(t, get, "X-Amz-Expires=900")
}
