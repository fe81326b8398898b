package middlewares

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/storefront/internal"
)

// AccessLog writes one record per request once the handler returns.
// Status is the real one even when htmx received a 200.
func AccessLog() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)

			rw := c.ResponseWriter()
			level := slog.LevelInfo
			if err != nil || rw.Status() >= 500 {
				level = slog.LevelWarn
			}
			c.Logger().LogAttrs(c.Context(), level, "request",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", rw.Status()),
				slog.Int64("bytes", rw.Size()),
				slog.Duration("duration", time.Since(start)),
				slog.Bool("htmx", c.IsHTMX()),
			)
			return err
		}
	}
}
