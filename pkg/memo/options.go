package memo

import (
	"errors"
	"log/slog"
	"time"
)

var ErrInvalidate = errors.New("memo: failed to invalidate entry")

// DefaultTimeout bounds one shared computation.
const DefaultTimeout = 30 * time.Second

// Option configures a Memo.
type Option func(*config)

type config struct {
	now     func() time.Time
	log     *slog.Logger
	timeout time.Duration
}

// WithClock sets the time source used for staleness checks.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets the logger for store failures, which are otherwise
// swallowed and treated as misses.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

// WithTimeout bounds each shared computation. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WrapOption configures one memoized function.
type WrapOption func(*wrapConfig)

type wrapConfig struct {
	revalidate time.Duration
}

// WithRevalidate marks a stored value stale d after it was computed.
// Without it a value lives until Invalidate.
func WithRevalidate(d time.Duration) WrapOption {
	return func(c *wrapConfig) {
		c.revalidate = d
	}
}
