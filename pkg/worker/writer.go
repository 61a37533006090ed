package worker

import (
	"net/http"
)

// ResponseWriter wraps http.ResponseWriter and tracks whether the status
// line and headers were sent. It satisfies session.HeadersSentReporter.
type ResponseWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

// NewResponseWriter wraps w. Wrapping a *ResponseWriter returns it unchanged.
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	if rw, ok := w.(*ResponseWriter); ok {
		return rw
	}
	return &ResponseWriter{ResponseWriter: w}
}

func (w *ResponseWriter) WriteHeader(status int) {
	if !w.written {
		w.status = status
		w.written = true
		w.ResponseWriter.WriteHeader(status)
	}
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// HeadersSent reports whether WriteHeader or Write has been called
func (w *ResponseWriter) HeadersSent() bool {
	return w.written
}

// Status returns the HTTP status code, zero until headers are sent
func (w *ResponseWriter) Status() int {
	return w.status
}

// Flush implements http.Flusher if the underlying ResponseWriter supports it.
// Flushing commits the headers.
func (w *ResponseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		if !w.written {
			w.WriteHeader(http.StatusOK)
		}
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
