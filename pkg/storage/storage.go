package storage

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Storage stores uploaded product assets.
type Storage interface {
	// Put writes r under a generated key unless WithKey is given.
	Put(ctx context.Context, r io.Reader, size int64, opts ...Option) (*Object, error)
	// Get opens a stored object; the caller closes it.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete is idempotent: deleting a missing key succeeds.
	Delete(ctx context.Context, key string) error
	// URL returns a link a browser can fetch the object from.
	URL(ctx context.Context, key string, opts ...URLOption) (string, error)
}

// Object describes a stored file.
type Object struct {
	Key         string
	ContentType string
	ACL         ACL
	Size        int64
}

// ACL controls who may read an object.
type ACL string

const (
	ACLPrivate    ACL = "private"
	ACLPublicRead ACL = "public-read"
)

// Driver names accepted in Config.Driver.
const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

// Config selects and configures a backend. Fields are populated from the
// environment by the command layer.
type Config struct {
	Driver string `env:"STORAGE_DRIVER" envDefault:"local"`

	LocalDir  string `env:"STORAGE_LOCAL_DIR" envDefault:"./uploads"`
	PublicURL string `env:"STORAGE_PUBLIC_URL" envDefault:"/uploads"`

	Bucket    string `env:"S3_BUCKET"`
	AccessKey string `env:"S3_ACCESS_KEY"`
	SecretKey string `env:"S3_SECRET_KEY"`
	Endpoint  string `env:"S3_ENDPOINT"`
	Region    string `env:"S3_REGION" envDefault:"us-east-1"`
	PathStyle bool   `env:"S3_PATH_STYLE" envDefault:"false"`
	// S3PublicURL is a CDN or bucket URL for public-read objects.
	S3PublicURL string `env:"S3_PUBLIC_URL"`

	DefaultACL ACL           `env:"STORAGE_DEFAULT_ACL" envDefault:"private"`
	URLExpiry  time.Duration `env:"STORAGE_URL_EXPIRY" envDefault:"15m"`
}

// New builds the backend named by cfg.Driver.
func New(cfg Config) (Storage, error) {
	switch cfg.Driver {
	case DriverS3:
		return NewS3(cfg)
	case DriverLocal, "":
		return NewLocal(cfg)
	default:
		return nil, fmt.Errorf("%w: unknown driver %q", ErrInvalidConfig, cfg.Driver)
	}
}
