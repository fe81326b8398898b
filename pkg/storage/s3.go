package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3 stores objects in an S3-compatible bucket (AWS, MinIO, R2).
type S3 struct {
	client  *s3.Client
	presign *s3.PresignClient
	cfg     Config
}

// NewS3 requires Bucket, AccessKey and SecretKey.
func NewS3(cfg Config) (*S3, error) {
	if cfg.Bucket == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("%w: bucket and credentials are required", ErrInvalidConfig)
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	if cfg.DefaultACL == "" {
		cfg.DefaultACL = ACLPrivate
	}

	client := s3.New(s3.Options{}, func(o *s3.Options) {
		o.Region = cfg.Region
		o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		}
	})

	return &S3{client: client, presign: s3.NewPresignClient(client), cfg: cfg}, nil
}

func (s *S3) Put(ctx context.Context, r io.Reader, size int64, opts ...Option) (*Object, error) {
	o := putOptions{acl: s.cfg.DefaultACL}
	for _, opt := range opts {
		opt(&o)
	}

	if o.contentType == "" {
		o.contentType, r = sniff(r)
	}

	// The SDK hashes the payload, so the body has to be seekable.
	body, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}
		body = bytes.NewReader(data)
		size = int64(len(data))
	}

	key := o.key
	if key == "" {
		key = buildKey(o.prefix, o.name, o.contentType)
	}
	if !validKey(key) {
		return nil, ErrInvalidKey
	}

	acl := types.ObjectCannedACLPrivate
	if o.acl == ACLPublicRead {
		acl = types.ObjectCannedACLPublicRead
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(o.contentType),
		ACL:           acl,
	})
	if err != nil {
		return nil, wrapS3Error(err, ErrUploadFailed)
	}

	return &Object{Key: key, ContentType: o.contentType, ACL: o.acl, Size: size}, nil
}

func (s *S3) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, wrapS3Error(err, ErrNotFound)
	}
	return out.Body, nil
}

func (s *S3) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return wrapS3Error(err, ErrDeleteFailed)
	}
	return nil
}

// URL presigns a GET unless WithPublic is given.
func (s *S3) URL(ctx context.Context, key string, opts ...URLOption) (string, error) {
	o := urlOptions{expiry: s.cfg.URLExpiry}
	for _, opt := range opts {
		opt(&o)
	}

	if o.public {
		return s.publicURL(key), nil
	}

	in := &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	}
	if o.download != "" {
		in.ResponseContentDisposition = aws.String(fmt.Sprintf("attachment; filename=%q", o.download))
	}

	req, err := s.presign.PresignGetObject(ctx, in, func(po *s3.PresignOptions) {
		if o.expiry > 0 {
			po.Expires = o.expiry
		}
	})
	if err != nil {
		return "", wrapS3Error(err, ErrPresignFailed)
	}
	return req.URL, nil
}

func (s *S3) publicURL(key string) string {
	switch {
	case s.cfg.S3PublicURL != "":
		return strings.TrimSuffix(s.cfg.S3PublicURL, "/") + "/" + key
	case s.cfg.Endpoint != "" && s.cfg.PathStyle:
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(s.cfg.Endpoint, "/"), s.cfg.Bucket, key)
	case s.cfg.Endpoint != "":
		return strings.TrimSuffix(s.cfg.Endpoint, "/") + "/" + key
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
	}
}

var _ Storage = (*S3)(nil)
