// Package views holds the storefront's HTML components. Every component is
// a templ.Component, so handlers render them through Context.Render.
package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// page accumulates markup and keeps the first write error.
type page struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newPage(ctx context.Context, w io.Writer) *page {
	return &page{ctx: ctx, w: w}
}

// raw writes trusted markup.
func (p *page) raw(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

// text writes an escaped string.
func (p *page) text(s string) {
	p.raw(templ.EscapeString(s))
}

// rawf formats trusted markup; every argument is escaped.
func (p *page) rawf(format string, args ...any) {
	escaped := make([]any, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case templ.SafeURL:
			escaped[i] = templ.EscapeString(string(v))
		case string:
			escaped[i] = templ.EscapeString(v)
		default:
			escaped[i] = templ.EscapeString(fmt.Sprint(v))
		}
	}
	p.raw(fmt.Sprintf(format, escaped...))
}

func (p *page) render(c templ.Component) {
	if p.err != nil || c == nil {
		return
	}
	p.err = c.Render(p.ctx, p.w)
}

// component adapts a page-writing function into a templ.Component.
func component(fn func(p *page)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPage(ctx, w)
		fn(p)
		return p.err
	})
}
