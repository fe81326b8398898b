package views

import (
	"strconv"

	"github.com/a-h/templ"
)

// ErrorPage is the full-page error response.
func ErrorPage(code int, title, message, requestID string) templ.Component {
	return Layout(title, false, ErrorMessage(code, title, message, requestID))
}

// ErrorMessage is the error fragment for htmx requests.
func ErrorMessage(code int, title, message, requestID string) templ.Component {
	return component(func(p *page) {
		p.rawf(`<div class="error-page" role="alert"><h1>%s %s</h1>`, strconv.Itoa(code), title)
		if message != "" {
			p.rawf(`<p>%s</p>`, message)
		}
		if requestID != "" {
			p.rawf(`<p class="request-id">Request ID: <code>%s</code></p>`, requestID)
		}
		p.raw(`</div>`)
	})
}
