package handler

import (
	"bytes"
	"net/http"
)

// Buffer adapts a plain net/http handler to Handler. The handler writes into
// an in-memory recorder; the recorded status, headers and body are replayed
// when the returned Response is rendered. A panic in h propagates.
func Buffer(h http.Handler) Handler {
	return HandlerFunc(func(r *http.Request) (Response, error) {
		rec := &bufferedResponse{header: make(http.Header)}
		h.ServeHTTP(rec, r)
		return rec, nil
	})
}

// bufferedResponse is both the http.ResponseWriter handed to the wrapped
// handler and the Response returned to the caller.
type bufferedResponse struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func (b *bufferedResponse) Header() http.Header {
	return b.header
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

func (b *bufferedResponse) WriteHeader(status int) {
	if b.status == 0 {
		b.status = status
	}
}

func (b *bufferedResponse) Render(w http.ResponseWriter, r *http.Request) error {
	dst := w.Header()
	for k, v := range b.header {
		if k == "Set-Cookie" {
			// keep directives already set on w by decorators
			dst[k] = append(dst[k], v...)
			continue
		}
		dst[k] = v
	}

	status := b.status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, err := w.Write(b.body.Bytes())
	return err
}
