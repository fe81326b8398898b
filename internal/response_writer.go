package internal

import (
	"net/http"
	"sync"
)

// ResponseWriter records the status and body size of a response.
//
// htmx only swaps 2xx responses, so for htmx requests any status is sent to
// the client as 200 while Status keeps the real one for logs.
type ResponseWriter struct {
	http.ResponseWriter
	mu      sync.Mutex
	status  int
	size    int64
	written bool
	htmx    bool
}

func NewResponseWriter(w http.ResponseWriter, htmx bool) *ResponseWriter {
	return &ResponseWriter{ResponseWriter: w, status: http.StatusOK, htmx: htmx}
}

func (w *ResponseWriter) WriteHeader(code int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.writeHeaderLocked(code)
}

func (w *ResponseWriter) writeHeaderLocked(code int) {
	if w.written {
		return
	}
	w.written = true
	w.status = code
	if w.htmx {
		code = http.StatusOK
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	w.writeHeaderLocked(w.status)
	w.mu.Unlock()

	n, err := w.ResponseWriter.Write(b)
	w.mu.Lock()
	w.size += int64(n)
	w.mu.Unlock()
	return n, err
}

func (w *ResponseWriter) Status() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

func (w *ResponseWriter) Size() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

func (w *ResponseWriter) Written() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written
}

func (w *ResponseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
