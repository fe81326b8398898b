package internal

import (
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/storefront/pkg/htmx"
	"github.com/dmitrymomot/storefront/pkg/i18n"
)

// Component is anything templ can render.
type Component = templ.Component

// Context is the per-request view handlers work with. It is also a
// context.Context backed by the request's context.
type Context interface {
	context.Context

	Request() *http.Request
	Response() http.ResponseWriter
	Context() context.Context

	// Param returns a chi URL parameter, or "".
	Param(name string) string
	Query(name string) string
	Header(name string) string
	SetHeader(name, value string)

	Form(name string) string
	// MultipartForm parses the body as multipart/form-data.
	MultipartForm(maxMemory int64) (*multipart.Form, error)

	JSON(code int, v any) error
	String(code int, s string) error
	NoContent(code int) error

	// Redirect uses HX-Redirect for htmx requests.
	Redirect(code int, url string) error

	// Render writes component as text/html. Options set htmx response
	// headers and out-of-band fragments; they are ignored for plain requests.
	Render(code int, component Component, opts ...htmx.Option) error

	// RenderPartial renders partial for htmx requests and fullPage otherwise.
	RenderPartial(code int, fullPage, partial Component, opts ...htmx.Option) error

	IsHTMX() bool
	Written() bool

	// Locale is the number and currency format picked for this request.
	Locale() *i18n.LocaleFormat

	Logger() *slog.Logger
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores a value in the request context for later middleware,
	// handlers, and templates.
	Set(key, value any)
	Get(key any) any
	// WithContext replaces the request context. Middleware uses it to add
	// deadlines; everything after it sees ctx.
	WithContext(ctx context.Context)

	ResponseWriter() *ResponseWriter
}

type requestContext struct {
	request  *http.Request
	response *ResponseWriter
	logger   *slog.Logger
}

func newContext(w http.ResponseWriter, r *http.Request, log *slog.Logger) *requestContext {
	rw, ok := w.(*ResponseWriter)
	if !ok {
		rw = NewResponseWriter(w, htmx.IsHTMX(r))
	}
	return &requestContext{request: r, response: rw, logger: log}
}

func (c *requestContext) Request() *http.Request        { return c.request }
func (c *requestContext) Response() http.ResponseWriter { return c.response }
func (c *requestContext) Context() context.Context      { return c.request.Context() }

func (c *requestContext) Deadline() (time.Time, bool) { return c.request.Context().Deadline() }
func (c *requestContext) Done() <-chan struct{}       { return c.request.Context().Done() }
func (c *requestContext) Err() error                  { return c.request.Context().Err() }
func (c *requestContext) Value(key any) any           { return c.request.Context().Value(key) }

func (c *requestContext) Param(name string) string  { return chi.URLParam(c.request, name) }
func (c *requestContext) Query(name string) string  { return c.request.URL.Query().Get(name) }
func (c *requestContext) Header(name string) string { return c.request.Header.Get(name) }

func (c *requestContext) SetHeader(name, value string) {
	c.response.Header().Set(name, value)
}

func (c *requestContext) Form(name string) string {
	return c.request.FormValue(name)
}

func (c *requestContext) MultipartForm(maxMemory int64) (*multipart.Form, error) {
	if err := c.request.ParseMultipartForm(maxMemory); err != nil {
		return nil, err
	}
	return c.request.MultipartForm, nil
}

func (c *requestContext) JSON(code int, v any) error {
	c.response.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	c.response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.response.WriteHeader(code)
	_, err := c.response.Write([]byte(s))
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	htmx.Redirect(c.response, c.request, url, code)
	return nil
}

func (c *requestContext) Render(code int, component Component, opts ...htmx.Option) error {
	ctx := c.request.Context()
	isHTMX := htmx.IsHTMX(c.request)

	var res *htmx.Response
	if isHTMX && len(opts) > 0 {
		res = htmx.NewResponse(opts...)
		res.WriteHeaders(c.response)
	}

	c.response.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.response.WriteHeader(code)

	if err := component.Render(ctx, c.response); err != nil {
		return err
	}
	if res != nil {
		for _, oob := range res.OOB {
			if err := oob.Render(ctx, c.response); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *requestContext) RenderPartial(code int, fullPage, partial Component, opts ...htmx.Option) error {
	if htmx.IsHTMX(c.request) {
		return c.Render(code, partial, opts...)
	}
	return c.Render(code, fullPage)
}

func (c *requestContext) IsHTMX() bool  { return htmx.IsHTMX(c.request) }
func (c *requestContext) Written() bool { return c.response.Written() }

func (c *requestContext) Locale() *i18n.LocaleFormat {
	return i18n.FormatFromContext(c.request.Context())
}

func (c *requestContext) Logger() *slog.Logger { return c.logger }

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}

func (c *requestContext) Get(key any) any { return c.request.Context().Value(key) }

func (c *requestContext) WithContext(ctx context.Context) {
	c.request = c.request.WithContext(ctx)
}

func (c *requestContext) ResponseWriter() *ResponseWriter { return c.response }
