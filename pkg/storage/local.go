package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Local keeps objects on disk under a root directory. It has no notion of
// signed URLs: every object is reachable at PublicURL/key, so the HTTP
// layer should only expose prefixes holding public assets.
type Local struct {
	root      string
	publicURL string
}

func NewLocal(cfg Config) (*Local, error) {
	if cfg.LocalDir == "" {
		return nil, fmt.Errorf("%w: local directory is required", ErrInvalidConfig)
	}
	root, err := filepath.Abs(cfg.LocalDir)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	return &Local{root: root, publicURL: strings.TrimSuffix(cfg.PublicURL, "/")}, nil
}

// Put writes to a temp file in the target directory and renames it into
// place, so readers never observe a partial object.
func (l *Local) Put(_ context.Context, r io.Reader, _ int64, opts ...Option) (*Object, error) {
	o := putOptions{acl: ACLPrivate}
	for _, opt := range opts {
		opt(&o)
	}

	if o.contentType == "" {
		o.contentType, r = sniff(r)
	}

	key := o.key
	if key == "" {
		key = buildKey(o.prefix, o.name, o.contentType)
	}
	if !validKey(key) {
		return nil, ErrInvalidKey
	}

	dst := l.path(key)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return nil, errors.Join(ErrUploadFailed, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return nil, errors.Join(ErrUploadFailed, err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, r)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, errors.Join(ErrUploadFailed, err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return nil, errors.Join(ErrUploadFailed, err)
	}

	return &Object{Key: key, ContentType: o.contentType, ACL: o.acl, Size: n}, nil
}

func (l *Local) Get(_ context.Context, key string) (io.ReadCloser, error) {
	if !validKey(key) {
		return nil, ErrInvalidKey
	}
	f, err := os.Open(l.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return f, err
}

func (l *Local) Delete(_ context.Context, key string) error {
	if !validKey(key) {
		return ErrInvalidKey
	}
	if err := os.Remove(l.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Join(ErrDeleteFailed, err)
	}
	return nil
}

func (l *Local) URL(_ context.Context, key string, _ ...URLOption) (string, error) {
	if !validKey(key) {
		return "", ErrInvalidKey
	}
	return l.publicURL + "/" + key, nil
}

// FileServer serves objects stored under prefix, mounted at
// PublicURL/prefix/.
func (l *Local) FileServer(prefix string) http.Handler {
	prefix = strings.Trim(prefix, "/")
	dir := http.Dir(filepath.Join(l.root, filepath.FromSlash(prefix)))
	return http.StripPrefix(l.publicURL+"/"+prefix, http.FileServer(noListing{dir}))
}

func (l *Local) path(key string) string {
	return filepath.Join(l.root, filepath.FromSlash(key))
}

type noListing struct{ fs http.FileSystem }

func (n noListing) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	if st, err := f.Stat(); err == nil && st.IsDir() {
		_ = f.Close()
		return nil, fs.ErrNotExist
	}
	return f, nil
}

var _ Storage = (*Local)(nil)
