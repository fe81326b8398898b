// Package sanitizer turns admin-entered product descriptions into HTML that
// is safe to embed in storefront pages.
package sanitizer

import (
	"bytes"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	once      sync.Once
	plain     *bluemonday.Policy
	rich      *bluemonday.Policy
	markdowny goldmark.Markdown
)

func setup() {
	once.Do(func() {
		plain = bluemonday.StrictPolicy()

		rich = bluemonday.NewPolicy()
		rich.AllowStandardURLs()
		rich.AllowElements(
			"p", "br", "hr",
			"strong", "b", "em", "i", "del",
			"ul", "ol", "li",
			"code", "pre", "blockquote",
			"h3", "h4",
		)
		rich.AllowAttrs("href").OnElements("a")
		rich.RequireNoFollowOnLinks(true)
		rich.AddTargetBlankToFullyQualifiedLinks(true)

		markdowny = goldmark.New(
			goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		)
	})
}

// HTML keeps basic formatting and links and drops everything else,
// scripts and event handlers included.
func HTML(s string) string {
	setup()
	return rich.Sanitize(s)
}

// Text strips all markup and collapses whitespace.
func Text(s string) string {
	setup()
	return strings.Join(strings.Fields(plain.Sanitize(s)), " ")
}

// Markdown renders src as Markdown and sanitizes the result. Raw HTML in
// the source is escaped by the renderer before sanitizing.
func Markdown(src string) string {
	setup()
	var buf bytes.Buffer
	if err := markdowny.Convert([]byte(src), &buf); err != nil {
		return HTML("<p>" + Text(src) + "</p>")
	}
	return rich.Sanitize(buf.String())
}

// Excerpt returns the plain text of a Markdown description cut to at most
// n runes on a word boundary, with an ellipsis when shortened.
func Excerpt(src string, n int) string {
	text := Text(Markdown(src))
	r := []rune(text)
	if len(r) <= n {
		return text
	}
	cut := string(r[:n])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " .,;:") + "…"
}
