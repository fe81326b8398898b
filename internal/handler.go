package internal

// Handler declares its routes on a Router.
//
//	func (h *Products) Routes(r storefront.Router) {
//		r.GET("/products", h.list)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc serves a request. A returned error goes to the app's ErrorHandler
// unless a response was already written.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler renders an error returned by a handler or middleware.
type ErrorHandler func(Context, error) error
