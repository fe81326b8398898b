package storefront

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/storefront/internal"
	"github.com/dmitrymomot/storefront/pkg/health"
)

type (
	App             = internal.App
	Router          = internal.Router
	Context         = internal.Context
	Handler         = internal.Handler
	HandlerFunc     = internal.HandlerFunc
	Middleware      = internal.Middleware
	ErrorHandler    = internal.ErrorHandler
	Component       = internal.Component
	Option          = internal.Option
	RunOption       = internal.RunOption
	HealthOption    = internal.HealthOption
	HTTPError       = internal.HTTPError
	HTTPErrorOption = internal.HTTPErrorOption
	ResponseWriter  = internal.ResponseWriter
	Extractor       = internal.Extractor
	ExtractorSource = internal.ExtractorSource
)

func New(opts ...Option) *App { return internal.New(opts...) }

// App options.

func WithLogger(l *slog.Logger) Option                { return internal.WithLogger(l) }
func WithMiddleware(mw ...Middleware) Option          { return internal.WithMiddleware(mw...) }
func WithHandlers(h ...Handler) Option                { return internal.WithHandlers(h...) }
func WithErrorHandler(h ErrorHandler) Option          { return internal.WithErrorHandler(h) }
func WithNotFoundHandler(h HandlerFunc) Option        { return internal.WithNotFoundHandler(h) }
func WithStaticFiles(p string, h http.Handler) Option { return internal.WithStaticFiles(p, h) }
func WithHealthChecks(opts ...HealthOption) Option    { return internal.WithHealthChecks(opts...) }

// Health options.

func WithLivenessPath(path string) HealthOption  { return internal.WithLivenessPath(path) }
func WithReadinessPath(path string) HealthOption { return internal.WithReadinessPath(path) }
func WithHealthTimeout(d time.Duration) HealthOption {
	return internal.WithHealthTimeout(d)
}

func WithReadinessCheck(name string, check health.Check) HealthOption {
	return internal.WithReadinessCheck(name, check)
}

// Run options.

func Address(addr string) RunOption                         { return internal.Address(addr) }
func Logger(l *slog.Logger) RunOption                       { return internal.Logger(l) }
func ShutdownTimeout(d time.Duration) RunOption             { return internal.ShutdownTimeout(d) }
func StartupHook(fn func(context.Context) error) RunOption  { return internal.StartupHook(fn) }
func ShutdownHook(fn func(context.Context) error) RunOption { return internal.ShutdownHook(fn) }
func WithContext(ctx context.Context) RunOption             { return internal.WithContext(ctx) }

// Errors.

func NewHTTPError(code int, msg string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, msg, opts...)
}

func ErrBadRequest(msg string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(msg, opts...)
}

func ErrNotFound(msg string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(msg, opts...)
}

func ErrConflict(msg string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrConflict(msg, opts...)
}

func ErrRequestTooLarge(msg string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrRequestTooLarge(msg, opts...)
}

func ErrInternal(msg string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(msg, opts...)
}

func ErrServiceUnavailable(msg string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrServiceUnavailable(msg, opts...)
}

func WithTitle(title string) HTTPErrorOption  { return internal.WithTitle(title) }
func WithRequestID(id string) HTTPErrorOption { return internal.WithRequestID(id) }
func WithError(err error) HTTPErrorOption     { return internal.WithError(err) }
func AsHTTPError(err error) *HTTPError        { return internal.AsHTTPError(err) }

// Request helpers.

func ContextValue[T any](c Context, key any) T { return internal.ContextValue[T](c, key) }

func Param[T ~string | ~int | ~int64 | ~bool](c Context, name string) T {
	return internal.Param[T](c, name)
}

func QueryDefault[T ~string | ~int | ~int64 | ~bool](c Context, name string, def T) T {
	return internal.QueryDefault(c, name, def)
}
