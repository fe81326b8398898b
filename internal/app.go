package internal

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/storefront/pkg/health"
)

const (
	defaultReadHeaderTimeout = 5 * time.Second
	defaultReadTimeout       = 60 * time.Second
	defaultWriteTimeout      = 60 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultMaxHeaderBytes    = 1 << 20
	defaultShutdownTimeout   = 30 * time.Second
	defaultHealthTimeout     = 5 * time.Second
)

// App owns the router and the error path. It is immutable once New returns.
type App struct {
	router          chi.Router
	logger          *slog.Logger
	errorHandler    ErrorHandler
	notFoundHandler HandlerFunc
	middlewares     []Middleware
	handlers        []Handler
	mounts          []mount
	health          *healthConfig
}

type mount struct {
	pattern string
	handler http.Handler
}

func New(opts ...Option) *App {
	a := &App{
		router: chi.NewRouter(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.setupRoutes()
	return a
}

// Router exposes the chi router, mainly for tests and http.Server.
func (a *App) Router() chi.Router { return a.router }

func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

func (a *App) setupRoutes() {
	for _, mw := range a.middlewares {
		a.router.Use(a.adaptMiddleware(mw))
	}

	if a.notFoundHandler != nil {
		a.router.NotFound(a.serve(a.notFoundHandler))
	}

	if a.health != nil {
		a.router.Get(a.health.livePath, health.Live())
		a.router.Get(a.health.readyPath, health.Ready(a.health.checks, a.health.timeout, a.logger))
	}

	for _, m := range a.mounts {
		a.router.Mount(m.pattern, m.handler)
	}

	r := &routerAdapter{router: a.router, app: a}
	for _, h := range a.handlers {
		h.Routes(r)
	}
}

func (a *App) serve(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a.logger)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

// adaptMiddleware runs a Middleware as chi middleware. The request seen by
// next carries any values the middleware stored with Context.Set.
func (a *App) adaptMiddleware(mw Middleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c := newContext(w, r, a.logger)
			h := mw(func(c Context) error {
				next.ServeHTTP(c.Response(), c.Request())
				return nil
			})
			if err := h(c); err != nil {
				a.handleError(c, err)
			}
		})
	}
}

func (a *App) handleError(c Context, err error) {
	if c.Written() {
		c.LogWarn("error after response was written", slog.Any("error", err))
		return
	}
	if a.errorHandler == nil {
		c.LogError("unhandled error", slog.Any("error", err))
		http.Error(c.Response(), http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if herr := a.errorHandler(c, err); herr != nil {
		c.LogError("error handler failed", slog.Any("error", herr), slog.Any("cause", err))
	}
}

type healthConfig struct {
	checks    map[string]health.Check
	livePath  string
	readyPath string
	timeout   time.Duration
}

// HealthOption configures the probe endpoints.
type HealthOption func(*healthConfig)

func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livePath = path
		}
	}
}

func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readyPath = path
		}
	}
}

// WithReadinessCheck adds a named dependency check to the readiness probe.
func WithReadinessCheck(name string, check health.Check) HealthOption {
	return func(c *healthConfig) {
		if check != nil {
			c.checks[name] = check
		}
	}
}

func WithHealthTimeout(d time.Duration) HealthOption {
	return func(c *healthConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}
