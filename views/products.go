package views

import (
	"github.com/a-h/templ"

	"github.com/dmitrymomot/storefront/catalog"
	"github.com/dmitrymomot/storefront/pkg/i18n"
	"github.com/dmitrymomot/storefront/pkg/sanitizer"
)

// Skeleton counts shown while a grid loads.
const (
	SectionSkeletons  = 3
	ProductsSkeletons = 6
)

// ProductImageURL is the redirecting image endpoint for a product.
func ProductImageURL(p catalog.Product) string {
	return "/products/" + p.ID.String() + "/image"
}

func ProductCard(prod catalog.Product) templ.Component {
	return component(func(p *page) {
		lf := i18n.FormatFromContext(p.ctx)
		p.rawf(`<article class="card" id="product-%s">`, prod.ID.String())
		p.rawf(`<img src="%s" alt="%s" loading="lazy">`, ProductImageURL(prod), prod.Name)
		p.rawf(`<h3>%s</h3>`, prod.Name)
		p.rawf(`<p class="price">%s</p>`, lf.FormatCents(prod.PriceInCents))
		p.raw(`<div class="description">`)
		p.raw(sanitizer.Markdown(prod.Description))
		p.raw(`</div></article>`)
	})
}

// SkeletonCard is the placeholder for a card that is still loading.
func SkeletonCard() templ.Component {
	return component(func(p *page) {
		p.raw(`<div class="card skeleton" aria-hidden="true"></div>`)
	})
}

// ProductGrid renders loaded products.
func ProductGrid(products []catalog.Product) templ.Component {
	return component(func(p *page) {
		if len(products) == 0 {
			p.raw(`<p class="empty">No products found</p>`)
			return
		}
		p.raw(`<div class="grid">`)
		for _, prod := range products {
			p.render(ProductCard(prod))
		}
		p.raw(`</div>`)
	})
}

// LazyGrid renders n skeleton cards that replace themselves with the
// fragment at src once htmx loads.
func LazyGrid(src string, n int) templ.Component {
	return component(func(p *page) {
		p.rawf(`<div class="grid" hx-get="%s" hx-trigger="load" hx-swap="outerHTML">`, src)
		for range n {
			p.render(SkeletonCard())
		}
		p.raw(`</div>`)
	})
}

// ProductSection is a titled grid with a "View All" link. A nil grid
// renders the lazy-loading skeleton for src instead.
func ProductSection(title, src string, grid templ.Component) templ.Component {
	return component(func(p *page) {
		p.raw(`<section class="products-section">`)
		p.rawf(`<div class="section-header"><h2>%s</h2><a href="/products">View All</a></div>`, title)
		if grid == nil {
			grid = LazyGrid(src, SectionSkeletons)
		}
		p.render(grid)
		p.raw(`</section>`)
	})
}

// Home sections. A nil slice renders the section's skeleton.
func HomeSections(popular, newest []catalog.Product) templ.Component {
	return component(func(p *page) {
		p.render(ProductSection("Most Popular", "/sections/popular", gridOrNil(popular)))
		p.render(ProductSection("Newest", "/sections/newest", gridOrNil(newest)))
	})
}

func HomePage(popular, newest []catalog.Product) templ.Component {
	return Layout("Storefront", false, HomeSections(popular, newest))
}

// ProductsList is the /products body. A nil slice renders skeletons.
func ProductsList(products []catalog.Product) templ.Component {
	return component(func(p *page) {
		p.raw(`<h1>Products</h1>`)
		if products == nil {
			p.render(LazyGrid("/sections/products", ProductsSkeletons))
			return
		}
		p.render(ProductGrid(products))
	})
}

func ProductsPage(products []catalog.Product) templ.Component {
	return Layout("Products", false, ProductsList(products))
}

func gridOrNil(products []catalog.Product) templ.Component {
	if products == nil {
		return nil
	}
	return ProductGrid(products)
}
