package middlewares

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/storefront/internal"
)

const DefaultTimeout = 30 * time.Second

// Timeout puts a deadline on the request context. Queries and storage calls
// made with the context abort when it passes. If the handler has not written
// anything by then, the result is a *TimeoutError.
func Timeout(d time.Duration) internal.Middleware {
	if d <= 0 {
		d = DefaultTimeout
	}
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), d)
			defer cancel()
			c.WithContext(ctx)

			err := next(c)
			if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Written() {
				c.LogWarn("request timed out", slog.Duration("timeout", d), slog.Any("error", err))
				return &TimeoutError{Duration: d}
			}
			return err
		}
	}
}
