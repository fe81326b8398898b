// Package storefront is the web core the storefront application is built on:
// an immutable App over chi, a Context that is also a context.Context,
// handler-returned errors, htmx-aware rendering with templ, and a Run loop
// with startup and shutdown hooks.
//
//	app := storefront.New(
//		storefront.WithLogger(log),
//		storefront.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//		storefront.WithErrorHandler(handlers.ErrorHandler()),
//		storefront.WithHandlers(handlers.NewStorefront(cat, store), handlers.NewAdminProducts(cat, pipeline, cookies, maxUpload)),
//		storefront.WithHealthChecks(storefront.WithReadinessCheck("db", db.Healthcheck(pool))),
//	)
//	err := app.Run(storefront.Address(":8080"), storefront.ShutdownHook(db.Shutdown(pool)))
//
// Catalog logic lives in the catalog package and HTTP in handlers. The
// cmd/storefront command wires them together.
package storefront
