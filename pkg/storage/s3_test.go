package storage_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/storage"
)

func TestS3_PublicURL(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	base := storage.Config{Bucket: "shop", AccessKey: "ak", SecretKey: "sk", Region: "eu-west-1"}

	tests := []struct {
		name string
		cfg  func(storage.Config) storage.Config
		want string
	}{
		{
			name: "aws virtual host",
			cfg:  func(c storage.Config) storage.Config { return c },
			want: "https://shop.s3.eu-west-1.amazonaws.com/products/images/a.png",
		},
		{
			name: "cdn",
			cfg: func(c storage.Config) storage.Config {
				c.S3PublicURL = "https://cdn.example.com/"
				return c
			},
			want: "https://cdn.example.com/products/images/a.png",
		},
		{
			name: "minio path style",
			cfg: func(c storage.Config) storage.Config {
				c.Endpoint = "http://localhost:9000"
				c.PathStyle = true
				return c
			},
			want: "http://localhost:9000/shop/products/images/a.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := storage.NewS3(tt.cfg(base))
			require.NoError(t, err)

			u, err := s.URL(ctx, "products/images/a.png", storage.WithPublic())
			require.NoError(t, err)
			assert.Equal(t, tt.want, u)
		})
	}
}

func TestS3_SignedURL(t *testing.T) {
	t.Parallel()

	s, err := storage.NewS3(storage.Config{
		Bucket: "shop", AccessKey: "ak", SecretKey: "sk",
		Endpoint: "http://localhost:9000", PathStyle: true,
	})
	require.NoError(t, err)

	u, err := s.URL(context.Background(), "products/files/book.pdf", storage.WithDownload("book.pdf"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, "http://localhost:9000/shop/products/files/book.pdf?"))
	assert.Contains(t, u, "X-Amz-Signature=")
	assert.Contains(t, u, "response-content-disposition=")
}

func TestNewS3_RequiresCredentials(t *testing.T) {
	t.Parallel()

	_, err := storage.NewS3(storage.Config{Bucket: "b", AccessKey: "a"})
	require.ErrorIs(t, err, storage.ErrInvalidConfig)
}
