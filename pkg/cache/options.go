package cache

import "time"

// MemoryOption configures a Memory store.
type MemoryOption func(*memoryConfig)

type memoryConfig struct {
	now           func() time.Time
	sweepInterval time.Duration
	capacity      int
}

// WithClock replaces time.Now for expiry checks.
func WithClock(now func() time.Time) MemoryOption {
	return func(c *memoryConfig) {
		if now != nil {
			c.now = now
		}
	}
}

// WithSweepInterval sets how often expired entries are purged in the
// background. Zero disables the sweeper; expired entries are then dropped
// lazily on read.
func WithSweepInterval(d time.Duration) MemoryOption {
	return func(c *memoryConfig) {
		c.sweepInterval = d
	}
}

// WithCapacity bounds the number of entries. The least recently read
// entry is dropped once the bound is reached. Zero means unbounded.
func WithCapacity(n int) MemoryOption {
	return func(c *memoryConfig) {
		c.capacity = n
	}
}

// RedisOption configures a Redis store.
type RedisOption func(*redisConfig)

type redisConfig struct {
	namespace string
}

// WithNamespace prefixes every key as "{namespace}:{key}" so several stores
// can share one Redis database.
func WithNamespace(ns string) RedisOption {
	return func(c *redisConfig) {
		c.namespace = ns
	}
}
