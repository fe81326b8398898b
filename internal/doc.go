// Package internal holds the web core behind the storefront package: the App,
// the per-request Context, the chi router adapter, HTTP errors, and the
// graceful Run loop.
//
// Import github.com/dmitrymomot/storefront instead; it re-exports the parts
// handlers and commands need.
//
// Handlers return errors instead of writing failure responses themselves:
//
//	func (h *Products) show(c storefront.Context) error {
//		p, err := h.catalog.Get(c, storefront.Param[string](c, "id"))
//		if err != nil {
//			return err // the app's ErrorHandler picks the status
//		}
//		return c.Render(http.StatusOK, views.Product(p))
//	}
//
// Context implements context.Context, so it can be handed straight to the
// repository and storage layers.
package internal
