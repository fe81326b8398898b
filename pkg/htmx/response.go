package htmx

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

// Response collects header instructions and out-of-band fragments for one
// htmx response.
type Response struct {
	OOB      []templ.Component
	Retarget string
	Reswap   Swap
	Reselect string
	PushURL  string
	Triggers []string
	Refresh  bool
}

// Option adjusts a Response.
type Option func(*Response)

// NewResponse applies opts to an empty Response.
func NewResponse(opts ...Option) *Response {
	r := &Response{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WriteHeaders sets the headers; it must run before WriteHeader.
func (r *Response) WriteHeaders(w http.ResponseWriter) {
	if r == nil {
		return
	}
	h := w.Header()
	set := func(k, v string) {
		if v != "" {
			h.Set(k, v)
		}
	}
	set(HeaderRetarget, r.Retarget)
	set(HeaderReswap, string(r.Reswap))
	set(HeaderReselect, r.Reselect)
	set(HeaderPushURL, r.PushURL)
	set(HeaderTriggerEvents, strings.Join(r.Triggers, ", "))
	if r.Refresh {
		h.Set(HeaderRefresh, "true")
	}
}

// WithOOB appends fragments rendered after the main component. Each must
// carry an id and hx-swap-oob.
func WithOOB(c ...templ.Component) Option {
	return func(r *Response) { r.OOB = append(r.OOB, c...) }
}

func WithRetarget(selector string) Option {
	return func(r *Response) { r.Retarget = selector }
}

func WithReswap(s Swap) Option {
	return func(r *Response) { r.Reswap = s }
}

func WithReselect(selector string) Option {
	return func(r *Response) { r.Reselect = selector }
}

func WithPushURL(url string) Option {
	return func(r *Response) { r.PushURL = url }
}

// WithTrigger fires client-side events once the response arrives.
func WithTrigger(events ...string) Option {
	return func(r *Response) { r.Triggers = append(r.Triggers, events...) }
}

func WithRefresh() Option {
	return func(r *Response) { r.Refresh = true }
}
