package redis

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrEmptyURL          = errors.New("redis: empty connection URL")
	ErrInvalidURL        = errors.New("redis: invalid connection URL")
	ErrConnect           = errors.New("redis: failed to connect")
	ErrHealthcheckFailed = errors.New("redis: healthcheck failed")
)

// Open parses cfg.URL (redis:// or rediss://) and pings until the server
// answers or the retry budget runs out.
func Open(ctx context.Context, cfg Config) (redis.UniversalClient, error) {
	ro, err := options(cfg)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= max(cfg.RetryAttempts, 1); attempt++ {
		client := redis.NewClient(ro)
		if lastErr = client.Ping(ctx).Err(); lastErr == nil {
			return client, nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrConnect, ctx.Err())
		case <-time.After(time.Duration(attempt) * cfg.RetryInterval):
		}
	}

	return nil, errors.Join(ErrConnect, lastErr)
}

func options(cfg Config) (*redis.Options, error) {
	switch {
	case cfg.URL == "":
		return nil, ErrEmptyURL
	case !strings.HasPrefix(cfg.URL, "redis://") && !strings.HasPrefix(cfg.URL, "rediss://"):
		return nil, ErrInvalidURL
	}

	ro, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, errors.Join(ErrInvalidURL, err)
	}

	if cfg.PoolSize > 0 {
		ro.PoolSize = cfg.PoolSize
	}
	ro.MinIdleConns = cfg.MinIdleConns
	ro.ConnMaxIdleTime = cfg.MaxIdleTime
	if cfg.DialTimeout > 0 {
		ro.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		ro.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		ro.WriteTimeout = cfg.WriteTimeout
	}
	return ro, nil
}

// Healthcheck pings the client for the readiness probe.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return ErrHealthcheckFailed
		}
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// Shutdown closes the client as an application shutdown hook.
func Shutdown(client io.Closer) func(context.Context) error {
	return func(context.Context) error {
		return client.Close()
	}
}
