// Package handlers serves the storefront and the admin pages.
package handlers

import (
	"net/http"

	"github.com/dmitrymomot/storefront"
	"github.com/dmitrymomot/storefront/catalog"
	"github.com/dmitrymomot/storefront/pkg/storage"
	"github.com/dmitrymomot/storefront/views"
)

const uuidPattern = `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`

// Storefront serves the customer pages.
type Storefront struct {
	catalog *catalog.Catalog
	storage storage.Storage
}

func NewStorefront(c *catalog.Catalog, s storage.Storage) *Storefront {
	return &Storefront{catalog: c, storage: s}
}

func (h *Storefront) Routes(r storefront.Router) {
	r.GET("/", h.home)
	r.GET("/sections/popular", h.popular)
	r.GET("/sections/newest", h.newest)
	r.GET("/sections/products", h.productsGrid)
	r.GET("/products", h.products)
	r.GET("/products/{id:"+uuidPattern+"}/image", h.image)
}

// home resolves both sections inline for plain requests; htmx requests get
// skeletons that load each section separately.
func (h *Storefront) home(c storefront.Context) error {
	if c.IsHTMX() {
		return c.Render(http.StatusOK, views.HomeSections(nil, nil))
	}

	popular, err := h.catalog.PopularProducts(c)
	if err != nil {
		return err
	}
	newest, err := h.catalog.NewestProducts(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, views.HomePage(nonNil(popular), nonNil(newest)))
}

func (h *Storefront) popular(c storefront.Context) error {
	products, err := h.catalog.PopularProducts(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, views.ProductGrid(products))
}

func (h *Storefront) newest(c storefront.Context) error {
	products, err := h.catalog.NewestProducts(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, views.ProductGrid(products))
}

func (h *Storefront) productsGrid(c storefront.Context) error {
	products, err := h.catalog.AllProducts(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, views.ProductGrid(products))
}

func (h *Storefront) products(c storefront.Context) error {
	if c.IsHTMX() {
		return c.Render(http.StatusOK, views.ProductsList(nil))
	}

	products, err := h.catalog.AllProducts(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, views.ProductsPage(nonNil(products)))
}

// image redirects to wherever the storage backend serves the image.
func (h *Storefront) image(c storefront.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	product, err := h.catalog.Get(c, id)
	if err != nil {
		return err
	}
	url, err := h.storage.URL(c, product.ImagePath, storage.WithPublic())
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, url)
}

// nonNil keeps an empty result from rendering as a loading skeleton.
func nonNil(products []catalog.Product) []catalog.Product {
	if products == nil {
		return []catalog.Product{}
	}
	return products
}
