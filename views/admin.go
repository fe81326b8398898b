package views

import (
	"github.com/a-h/templ"

	"github.com/dmitrymomot/storefront/catalog"
	"github.com/dmitrymomot/storefront/pkg/i18n"
	"github.com/dmitrymomot/storefront/requests"
)

// PricePreviewID is the element the price preview fragment replaces.
const PricePreviewID = "price-preview"

func AdminProductsPage(products []catalog.Product, notice string) templ.Component {
	return Layout("Admin · Products", true, AdminProductsTable(products, notice))
}

// AdminProductsTable lists every product, drafts included. A non-empty
// notice is shown above the table.
func AdminProductsTable(products []catalog.Product, notice string) templ.Component {
	return component(func(p *page) {
		p.raw(`<div class="admin-header"><h1>Products</h1><a class="button" href="/admin/products/new">Add Product</a></div>`)
		if notice != "" {
			p.rawf(`<p class="notice" role="status">%s</p>`, notice)
		}
		if len(products) == 0 {
			p.raw(`<p class="empty">No products found</p>`)
			return
		}
		p.raw(`<table class="admin-products"><thead><tr>` +
			`<th>Available</th><th>Name</th><th>Price</th><th>Orders</th><th>Actions</th>` +
			`</tr></thead><tbody>`)
		for _, prod := range products {
			p.render(AdminProductRow(prod))
		}
		p.raw(`</tbody></table>`)
	})
}

// AdminProductRow is one table row; toggling availability swaps it.
func AdminProductRow(prod catalog.Product) templ.Component {
	return component(func(p *page) {
		lf := i18n.FormatFromContext(p.ctx)
		id := prod.ID.String()

		status, action := "Unavailable", "Make available"
		if prod.IsAvailableForPurchase {
			status, action = "Available", "Make unavailable"
		}

		p.rawf(`<tr id="admin-product-%s">`, id)
		p.rawf(`<td>%s</td>`, status)
		p.rawf(`<td>%s</td>`, prod.Name)
		p.rawf(`<td>%s</td>`, lf.FormatCents(prod.PriceInCents))
		p.rawf(`<td>%s</td>`, lf.FormatInt(prod.OrderCount))
		p.raw(`<td class="actions">`)
		p.rawf(`<a href="%s/edit">Edit</a>`, templ.SafeURL(EditProductURL(prod)))
		p.rawf(`<form method="post" action="/admin/products/%s/availability" `+
			`hx-post="/admin/products/%s/availability" hx-target="closest tr" hx-swap="outerHTML">`+
			`<button type="submit">%s</button></form>`, id, id, action)
		if prod.OrderCount > 0 {
			p.raw(`<button type="button" disabled title="Products with orders cannot be deleted">Delete</button>`)
		} else {
			p.rawf(`<button type="button" hx-delete="/admin/products/%s" hx-target="closest tr" `+
				`hx-swap="outerHTML" hx-confirm="Delete %s?">Delete</button>`, id, prod.Name)
		}
		p.raw(`</td></tr>`)
	})
}

func ProductFormPage(form requests.ProductForm, errs requests.ErrorMap) templ.Component {
	return Layout("Admin · Add Product", true, component(func(p *page) {
		p.raw(`<h1>Add Product</h1>`)
		p.render(ProductForm(form, errs))
	}))
}

// ProductForm renders the add-product form with the submitted values and
// per-field errors. The submit button is disabled while a request is in
// flight.
func ProductForm(form requests.ProductForm, errs requests.ErrorMap) templ.Component {
	return productForm("/admin/products", form, errs, nil)
}

func EditProductFormPage(prod catalog.Product, form requests.ProductForm, errs requests.ErrorMap) templ.Component {
	return Layout("Admin · Edit Product", true, component(func(p *page) {
		p.raw(`<h1>Edit Product</h1>`)
		p.render(EditProductForm(prod, form, errs))
	}))
}

// EditProductForm posts to the product's own URL. File inputs may be left
// empty to keep the stored assets.
func EditProductForm(prod catalog.Product, form requests.ProductForm, errs requests.ErrorMap) templ.Component {
	return productForm(EditProductURL(prod), form, errs, &prod)
}

// EditProductURL is where the edit form is shown and submitted.
func EditProductURL(prod catalog.Product) string {
	return "/admin/products/" + prod.ID.String()
}

func productForm(action string, form requests.ProductForm, errs requests.ErrorMap, editing *catalog.Product) templ.Component {
	return component(func(p *page) {
		price, _ := form.Price()
		required := " required"
		if editing != nil {
			required = ""
		}

		p.rawf(`<form id="product-form" method="post" action="%s" enctype="multipart/form-data" `+
			`hx-post="%s" hx-encoding="multipart/form-data" hx-target="this" hx-swap="outerHTML" `+
			`hx-disabled-elt="find button[type=submit]">`, action, action)

		p.field(requests.FieldName, "Name", errs, func() {
			p.rawf(`<input type="text" id="name" name="name" required value="%s">`, form.Name)
		})

		p.field(requests.FieldPriceInCents, "Price In Cents", errs, func() {
			p.rawf(`<input type="number" id="priceInCents" name="priceInCents" required min="1" max="%s" step="1" value="%s" `+
				`hx-get="/admin/products/price-preview" hx-trigger="keyup changed delay:150ms, change" `+
				`hx-target="#%s" hx-swap="outerHTML">`, catalog.MaxPriceInCents, form.PriceInCents, PricePreviewID)
			p.render(PricePreview(price))
		})

		p.field(requests.FieldDescription, "Description", errs, func() {
			p.rawf(`<textarea id="description" name="description" required>%s</textarea>`, form.Description)
		})

		p.field(requests.FieldFile, "File", errs, func() {
			p.raw(`<input type="file" id="file" name="file"` + required + `>`)
			if editing != nil {
				p.raw(`<div class="hint">Leave empty to keep the current file.</div>`)
			}
		})

		p.field(requests.FieldImage, "Image", errs, func() {
			p.raw(`<input type="file" id="image" name="image" accept="image/*"` + required + `>`)
			if editing != nil {
				p.rawf(`<img class="current-image" src="%s" alt="%s" width="120">`,
					templ.SafeURL(ProductImageURL(*editing)), editing.Name)
			}
		})

		p.raw(`<button type="submit"><span class="when-idle">Save</span>` +
			`<span class="htmx-indicator">Saving...</span></button>`)
		p.raw(`</form>`)
	})
}

func (p *page) field(name, label string, errs requests.ErrorMap, input func()) {
	p.raw(`<div class="field">`)
	p.rawf(`<label for="%s">%s</label>`, name, label)
	input()
	if msg, ok := errs[name]; ok {
		p.rawf(`<div class="error" id="%s-error">%s</div>`, name, msg)
	}
	p.raw(`</div>`)
}

// PricePreview shows cents in the request's currency format.
func PricePreview(cents int64) templ.Component {
	return component(func(p *page) {
		lf := i18n.FormatFromContext(p.ctx)
		p.rawf(`<div class="price-preview" id="%s">%s</div>`, PricePreviewID, lf.FormatCents(cents))
	})
}
