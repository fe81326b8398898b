package cache

import "errors"

var (
	ErrNotFound = errors.New("cache: entry not found")
	ErrClosed   = errors.New("cache: store closed")
	ErrEncode   = errors.New("cache: failed to encode value")
	ErrDecode   = errors.New("cache: failed to decode value")
)
