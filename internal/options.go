package internal

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/storefront/pkg/health"
)

// Option configures an App.
type Option func(*App)

func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithMiddleware appends global middleware, run in the order given.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) { a.middlewares = append(a.middlewares, mw...) }
}

func WithHandlers(h ...Handler) Option {
	return func(a *App) { a.handlers = append(a.handlers, h...) }
}

func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) { a.errorHandler = h }
}

func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) { a.notFoundHandler = h }
}

// WithStaticFiles mounts h under pattern. h sees the full request path.
func WithStaticFiles(pattern string, h http.Handler) Option {
	return func(a *App) {
		if h == nil || pattern == "" {
			return
		}
		a.mounts = append(a.mounts, mount{pattern: strings.TrimSuffix(pattern, "/"), handler: h})
	}
}

// WithHealthChecks mounts /health/live and /health/ready.
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			checks:    make(map[string]health.Check),
			livePath:  "/health/live",
			readyPath: "/health/ready",
			timeout:   defaultHealthTimeout,
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.health = cfg
	}
}
