package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/storefront"
	"github.com/dmitrymomot/storefront/catalog"
	"github.com/dmitrymomot/storefront/pkg/cookie"
	"github.com/dmitrymomot/storefront/requests"
	"github.com/dmitrymomot/storefront/views"
)

// AdminProducts serves product management.
type AdminProducts struct {
	catalog       *catalog.Catalog
	pipeline      *catalog.Pipeline
	cookies       *cookie.Manager
	maxUploadSize int64
}

// noticeKey names the flash that reports the last redirecting action.
const noticeKey = "notice"

func NewAdminProducts(c *catalog.Catalog, p *catalog.Pipeline, cookies *cookie.Manager, maxUploadSize int64) *AdminProducts {
	return &AdminProducts{catalog: c, pipeline: p, cookies: cookies, maxUploadSize: maxUploadSize}
}

func (h *AdminProducts) Routes(r storefront.Router) {
	r.Route("/admin/products", func(r storefront.Router) {
		r.GET("/", h.list)
		r.GET("/new", h.form)
		r.GET("/price-preview", h.pricePreview)
		r.POST("/", h.create)
		r.GET("/{id:"+uuidPattern+"}/edit", h.edit)
		r.POST("/{id:"+uuidPattern+"}", h.update)
		r.POST("/{id:"+uuidPattern+"}/availability", h.toggleAvailability)
		r.DELETE("/{id:"+uuidPattern+"}", h.delete)
	})
}

func (h *AdminProducts) list(c storefront.Context) error {
	products, err := h.catalog.ListAll(c)
	if err != nil {
		return err
	}

	var notice string
	if err := h.cookies.Flash(c.Response(), c.Request(), noticeKey, &notice); err != nil && !errors.Is(err, cookie.ErrNotFound) {
		c.LogWarn("discarding flash", "error", err)
	}

	return c.RenderPartial(http.StatusOK,
		views.AdminProductsPage(products, notice),
		views.AdminProductsTable(products, notice),
	)
}

// redirectWithNotice sends the browser back to the product list, which
// shows notice once.
func (h *AdminProducts) redirectWithNotice(c storefront.Context, notice string) error {
	if err := h.cookies.SetFlash(c.Response(), noticeKey, notice); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/products")
}

func (h *AdminProducts) form(c storefront.Context) error {
	return c.RenderPartial(http.StatusOK,
		views.ProductFormPage(requests.ProductForm{}, nil),
		views.ProductForm(requests.ProductForm{}, nil),
	)
}

// create validates the whole form before anything is stored; invalid input
// re-renders the form with every field error.
func (h *AdminProducts) create(c storefront.Context) error {
	form, err := requests.ParseProductForm(c.Request(), h.maxUploadSize)
	if err != nil {
		return err
	}

	if errs := form.Validate(); !errs.IsEmpty() {
		fields := requests.NewErrorMap(errs)
		return c.RenderPartial(http.StatusUnprocessableEntity,
			views.ProductFormPage(form, fields),
			views.ProductForm(form, fields),
		)
	}

	product, err := h.pipeline.AddProduct(c, form.Product())
	if err != nil {
		return err
	}
	c.LogInfo("product created", "product_id", product.ID.String())

	return h.redirectWithNotice(c, "Product \""+product.Name+"\" created.")
}

func (h *AdminProducts) edit(c storefront.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	product, err := h.catalog.Get(c, id)
	if err != nil {
		return err
	}

	form := requests.FormFromProduct(product)
	return c.RenderPartial(http.StatusOK,
		views.EditProductFormPage(product, form, nil),
		views.EditProductForm(product, form, nil),
	)
}

// update applies an edit. Uploads left empty keep the stored assets.
func (h *AdminProducts) update(c storefront.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	product, err := h.catalog.Get(c, id)
	if err != nil {
		return err
	}

	form, err := requests.ParseProductForm(c.Request(), h.maxUploadSize)
	if err != nil {
		return err
	}
	if errs := form.ValidateUpdate(); !errs.IsEmpty() {
		fields := requests.NewErrorMap(errs)
		return c.RenderPartial(http.StatusUnprocessableEntity,
			views.EditProductFormPage(product, form, fields),
			views.EditProductForm(product, form, fields),
		)
	}

	product, err = h.pipeline.UpdateProduct(c, id, form.Update())
	if err != nil {
		return err
	}
	c.LogInfo("product updated", "product_id", product.ID.String())

	return h.redirectWithNotice(c, "Product \""+product.Name+"\" updated.")
}

func (h *AdminProducts) toggleAvailability(c storefront.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	product, err := h.pipeline.ToggleAvailability(c, id)
	if err != nil {
		return err
	}
	if c.IsHTMX() {
		return c.Render(http.StatusOK, views.AdminProductRow(product))
	}
	return c.Redirect(http.StatusSeeOther, "/admin/products")
}

func (h *AdminProducts) delete(c storefront.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	if err := h.pipeline.DeleteProduct(c, id); err != nil {
		return err
	}
	if c.IsHTMX() {
		return c.NoContent(http.StatusOK)
	}
	return h.redirectWithNotice(c, "Product deleted.")
}

// pricePreview formats the typed price; input that is not an integer
// previews as zero.
func (h *AdminProducts) pricePreview(c storefront.Context) error {
	cents, err := strconv.ParseInt(strings.TrimSpace(c.Query("priceInCents")), 10, 64)
	if err != nil {
		cents = 0
	}
	return c.Render(http.StatusOK, views.PricePreview(cents))
}

func productID(c storefront.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, storefront.ErrNotFound("Product not found.")
	}
	return id, nil
}
