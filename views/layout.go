package views

import "github.com/a-h/templ"

const htmxScript = "https://unpkg.com/htmx.org@2.0.4"

// Layout wraps body in the document shell. admin switches the navigation.
func Layout(title string, admin bool, body templ.Component) templ.Component {
	return component(func(p *page) {
		p.raw(`<!doctype html><html lang="en"><head><meta charset="utf-8">`)
		p.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		p.rawf(`<title>%s</title>`, title)
		p.rawf(`<script src="%s" defer></script>`, htmxScript)
		p.raw(`<style>` +
			`.htmx-indicator{display:none}` +
			`.htmx-request .htmx-indicator,.htmx-request.htmx-indicator{display:inline}` +
			`.htmx-request .when-idle,.htmx-request.when-idle{display:none}` +
			`.skeleton{background:#e5e7eb;border-radius:.5rem;min-height:12rem}` +
			`</style></head>`)
		p.raw(`<body><header class="nav">`)
		if admin {
			p.raw(`<a href="/admin/products">Products</a> <a href="/admin/products/new">Add Product</a> <a href="/">Storefront</a>`)
		} else {
			p.raw(`<a href="/">Home</a> <a href="/products">Products</a>`)
		}
		p.raw(`</header><main class="container">`)
		p.render(body)
		p.raw(`</main></body></html>`)
	})
}
