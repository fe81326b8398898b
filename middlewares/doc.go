// Package middlewares holds the storefront's request middleware.
//
// The usual stack, outermost first:
//
//	storefront.WithMiddleware(
//		middlewares.RequestID(),
//		middlewares.Recover(),
//		middlewares.AccessLog(),
//		middlewares.Timeout(cfg.RequestTimeout),
//		middlewares.Locale(i18n.NewRegistry(language.AmericanEnglish)),
//	)
//
// RequestIDExtractor feeds the request id into every log record written with
// the request context. Recover and Timeout turn panics and deadlines into
// *PanicError and *TimeoutError for the app's error handler.
package middlewares
