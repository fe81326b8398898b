package htmx

import "net/http"

// Redirect sends htmx requests to url through HX-Redirect with a 200, since
// htmx does not follow 3xx for swaps, and plain requests through a regular
// redirect with status.
func Redirect(w http.ResponseWriter, r *http.Request, url string, status int) {
	if IsHTMX(r) {
		w.Header().Set(HeaderRedirect, url)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, url, status)
}
