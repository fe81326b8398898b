package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Store shared between processes. Values pass through a Codec,
// JSON unless another one is supplied.
type Redis[V any] struct {
	client redis.UniversalClient
	codec  Codec[V]
	cfg    redisConfig
}

// NewRedis wraps a client opened with pkg/redis. The client is owned by the
// caller; Close on the store leaves it open.
func NewRedis[V any](client redis.UniversalClient, codec Codec[V], opts ...RedisOption) *Redis[V] {
	var cfg redisConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if codec == nil {
		codec = JSONCodec[V]{}
	}
	return &Redis[V]{client: client, codec: codec, cfg: cfg}
}

func (r *Redis[V]) Get(ctx context.Context, key string) (V, error) {
	var zero V

	raw, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, ErrNotFound
	}
	if err != nil {
		return zero, err
	}

	return r.codec.Decode(raw)
}

func (r *Redis[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	raw, err := r.codec.Encode(value)
	if err != nil {
		return err
	}
	// Redis treats a zero expiration as "keep forever".
	return r.client.Set(ctx, r.key(key), raw, max(ttl, 0)).Err()
}

func (r *Redis[V]) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

func (r *Redis[V]) Close() error { return nil }

func (r *Redis[V]) key(k string) string {
	if r.cfg.namespace == "" {
		return k
	}
	return r.cfg.namespace + ":" + k
}

var _ Store[struct{}] = (*Redis[struct{}])(nil)
