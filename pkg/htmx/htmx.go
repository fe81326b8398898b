// Package htmx reads HTMX request headers and writes the response headers
// that steer client-side swaps.
package htmx

import "net/http"

// Request headers sent by htmx.
const (
	HeaderRequest     = "HX-Request"
	HeaderBoosted     = "HX-Boosted"
	HeaderTarget      = "HX-Target"
	HeaderTrigger     = "HX-Trigger"
	HeaderCurrentURL  = "HX-Current-URL"
	HeaderHistRestore = "HX-History-Restore-Request"
)

// Response headers understood by htmx.
const (
	HeaderRedirect      = "HX-Redirect"
	HeaderRefresh       = "HX-Refresh"
	HeaderPushURL       = "HX-Push-Url"
	HeaderRetarget      = "HX-Retarget"
	HeaderReswap        = "HX-Reswap"
	HeaderReselect      = "HX-Reselect"
	HeaderTriggerEvents = "HX-Trigger"
)

// IsHTMX reports whether r was issued by htmx. History restore requests
// want a full page and are treated as plain requests.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get(HeaderRequest) == "true" && r.Header.Get(HeaderHistRestore) != "true"
}

// IsBoosted reports whether r came from an hx-boost link or form.
func IsBoosted(r *http.Request) bool {
	return r.Header.Get(HeaderBoosted) == "true"
}

// Target returns the id of the element htmx will swap into.
func Target(r *http.Request) string {
	return r.Header.Get(HeaderTarget)
}

// Swap is an hx-swap strategy.
type Swap string

const (
	SwapInnerHTML Swap = "innerHTML"
	SwapOuterHTML Swap = "outerHTML"
	SwapBeforeEnd Swap = "beforeend"
	SwapDelete    Swap = "delete"
	SwapNone      Swap = "none"
)
