package middlewares

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/storefront/internal"
	"github.com/dmitrymomot/storefront/pkg/id"
	"github.com/dmitrymomot/storefront/pkg/logger"
)

// RequestIDHeader is both read from the request and echoed in the response.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

type RequestIDOption func(*requestIDConfig)

type requestIDConfig struct {
	generate func() string
	trust    bool
}

// WithRequestIDGenerator replaces the ULID generator.
func WithRequestIDGenerator(fn func() string) RequestIDOption {
	return func(c *requestIDConfig) {
		if fn != nil {
			c.generate = fn
		}
	}
}

// WithoutIncomingRequestID ignores X-Request-ID sent by clients.
func WithoutIncomingRequestID() RequestIDOption {
	return func(c *requestIDConfig) { c.trust = false }
}

// RequestID tags each request with an id, reusing the client's X-Request-ID
// when present.
func RequestID(opts ...RequestIDOption) internal.Middleware {
	cfg := &requestIDConfig{generate: id.NewULID, trust: true}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			reqID := ""
			if cfg.trust {
				reqID = c.Header(RequestIDHeader)
			}
			if reqID == "" || len(reqID) > 128 {
				reqID = cfg.generate()
			}
			c.Set(requestIDKey{}, reqID)
			c.SetHeader(RequestIDHeader, reqID)
			return next(c)
		}
	}
}

func GetRequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey{}).(string)
	return v
}

// RequestIDExtractor adds request_id to log records.
func RequestIDExtractor() logger.Extractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v := GetRequestID(ctx); v != "" {
			return slog.String("request_id", v), true
		}
		return slog.Attr{}, false
	}
}
