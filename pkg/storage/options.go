package storage

import "time"

// Option adjusts a single Put.
type Option func(*putOptions)

type putOptions struct {
	key         string
	prefix      string
	name        string
	contentType string
	acl         ACL
}

// WithKey stores the object under key instead of a generated one.
func WithKey(key string) Option {
	return func(o *putOptions) { o.key = key }
}

// WithPrefix places generated keys under prefix, e.g. "products/images".
func WithPrefix(prefix string) Option {
	return func(o *putOptions) { o.prefix = prefix }
}

// WithFilename keeps a sanitized copy of the client's filename in the
// generated key so downloads stay recognisable.
func WithFilename(name string) Option {
	return func(o *putOptions) { o.name = name }
}

// WithContentType skips magic-byte detection.
func WithContentType(ct string) Option {
	return func(o *putOptions) { o.contentType = ct }
}

func WithACL(acl ACL) Option {
	return func(o *putOptions) { o.acl = acl }
}

// URLOption adjusts URL generation.
type URLOption func(*urlOptions)

type urlOptions struct {
	expiry   time.Duration
	download string
	public   bool
}

// WithExpiry sets how long a signed URL stays valid.
func WithExpiry(d time.Duration) URLOption {
	return func(o *urlOptions) { o.expiry = d }
}

// WithDownload asks the browser to save the object as filename.
func WithDownload(filename string) URLOption {
	return func(o *urlOptions) { o.download = filename }
}

// WithPublic returns the unsigned URL. The object must be public-read.
func WithPublic() URLOption {
	return func(o *urlOptions) { o.public = true }
}
