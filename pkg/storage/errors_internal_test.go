package storage

import (
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
)

func TestWrapS3Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no such key code", &smithy.GenericAPIError{Code: "NoSuchKey"}, ErrNotFound},
		{"not found code", &smithy.GenericAPIError{Code: "NotFound"}, ErrNotFound},
		{"access denied", &smithy.GenericAPIError{Code: "AccessDenied"}, ErrAccessDenied},
		{"typed no such key", &types.NoSuchKey{}, ErrNotFound},
		{"other api error", &smithy.GenericAPIError{Code: "SlowDown"}, ErrUploadFailed},
		{"plain error", errors.New("network"), ErrUploadFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, wrapS3Error(tt.err, ErrUploadFailed), tt.want)
		})
	}
}

func TestBuildKey(t *testing.T) {
	t.Parallel()

	assert.Regexp(t, `^products/images/[0-9A-Z]{26}\.png$`, buildKey("products/images", "", "image/png"))
	assert.Regexp(t, `^[0-9A-Z]{26}\.bin$`, buildKey("", "", "application/x-unknown"))
	assert.Regexp(t, `^a/b/[0-9A-Z]{26}-x.pdf$`, buildKey("/a/../b/", "x.pdf", ""))
}
