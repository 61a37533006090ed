package handler

import "net/http"

// Response renders itself to an http.ResponseWriter.
// Implementations should set headers, status code, and write body.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Handler produces a Response for the request or fails.
type Handler interface {
	Handle(r *http.Request) (Response, error)
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc func(r *http.Request) (Response, error)

// Handle calls f(r).
func (f HandlerFunc) Handle(r *http.Request) (Response, error) {
	return f(r)
}

// Decorator wraps a Handler to add cross-cutting functionality.
type Decorator func(Handler) Handler

// Chain applies decorators so that the first one is the outermost wrapper.
func Chain(h Handler, decorators ...Decorator) Handler {
	for i := len(decorators) - 1; i >= 0; i-- {
		h = decorators[i](h)
	}
	return h
}

// cookieResponse writes Set-Cookie directives before delegating to the wrapped response.
type cookieResponse struct {
	next    Response
	cookies []*http.Cookie
}

func (c cookieResponse) Render(w http.ResponseWriter, r *http.Request) error {
	for _, ck := range c.cookies {
		http.SetCookie(w, ck)
	}
	return c.next.Render(w, r)
}

// WithCookies returns a Response that emits the given cookies and then renders resp.
// A nil resp stays nil, so callers report it as ErrNilResponse.
func WithCookies(resp Response, cookies ...*http.Cookie) Response {
	if len(cookies) == 0 || resp == nil {
		return resp
	}
	return cookieResponse{next: resp, cookies: cookies}
}
