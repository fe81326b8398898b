package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/storefront"
	"github.com/dmitrymomot/storefront/catalog"
	"github.com/dmitrymomot/storefront/middlewares"
	"github.com/dmitrymomot/storefront/requests"
	"github.com/dmitrymomot/storefront/views"
)

// statusClientClosedRequest is the non-standard code for a request the
// client abandoned before a response was ready.
const statusClientClosedRequest = 499

// ErrorHandler maps handler errors to a status and renders the error page,
// or just the message for htmx requests. 5xx responses are logged at error
// level.
func ErrorHandler() storefront.ErrorHandler {
	return func(c storefront.Context, err error) error {
		herr := toHTTPError(err)
		requestID := middlewares.GetRequestID(c)

		attrs := []any{
			slog.Int("status", herr.Code),
			slog.String("path", c.Request().URL.Path),
			slog.Any("error", err),
		}
		if herr.Code >= http.StatusInternalServerError {
			c.LogError("request failed", attrs...)
		} else {
			c.LogInfo("request rejected", attrs...)
		}

		title := herr.StatusText()
		return c.RenderPartial(herr.Code,
			views.ErrorPage(herr.Code, title, herr.Message, requestID),
			views.ErrorMessage(herr.Code, title, herr.Message, requestID),
		)
	}
}

func toHTTPError(err error) *storefront.HTTPError {
	if herr := storefront.AsHTTPError(err); herr != nil {
		return herr
	}
	if _, ok := middlewares.AsPanicError(err); ok {
		return storefront.ErrInternal("Something went wrong.", storefront.WithError(err))
	}
	if _, ok := middlewares.AsTimeoutError(err); ok {
		return storefront.ErrServiceUnavailable("The request took too long.", storefront.WithError(err))
	}

	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return storefront.ErrNotFound("Product not found.", storefront.WithError(err))
	case errors.Is(err, catalog.ErrHasOrders):
		return storefront.ErrConflict("Products with orders cannot be deleted.", storefront.WithError(err))
	case errors.Is(err, requests.ErrTooLarge):
		return storefront.ErrRequestTooLarge("The upload is too large.", storefront.WithError(err))
	case errors.Is(err, requests.ErrMalformedForm):
		return storefront.ErrBadRequest("The form could not be read.", storefront.WithError(err))
	case errors.Is(err, context.Canceled):
		return storefront.NewHTTPError(statusClientClosedRequest, "The request was cancelled.",
			storefront.WithTitle("Client Closed Request"), storefront.WithError(err))
	case errors.Is(err, context.DeadlineExceeded):
		return storefront.ErrServiceUnavailable("The request took too long.", storefront.WithError(err))
	default:
		return storefront.ErrInternal("Something went wrong.", storefront.WithError(err))
	}
}

// NotFound renders the 404 page for unmatched routes.
func NotFound(c storefront.Context) error {
	return storefront.ErrNotFound("Page not found.")
}
