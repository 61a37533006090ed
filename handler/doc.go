// Package handler defines the request/response contract used behind the
// session coordinator and the worker pool.
//
// A Handler receives the request and returns a Response value or an error. The
// Response is not written immediately: it is a detached value that renders
// itself later, which lets middleware decorate it (for example by attaching a
// Set-Cookie directive) after the handler has finished.
//
//	counter := handler.HandlerFunc(func(r *http.Request) (handler.Response, error) {
//		return handler.Text("hello"), nil
//	})
//
// # Response Types
//
//   - Empty / EmptyWithStatus: status code only
//   - Text: plain text body
//   - JSON / JSONError: JSON envelope with data, meta and error fields
//   - HTML: a github.com/a-h/templ component
//   - WithCookies: decorates any Response with Set-Cookie directives
//
// Plain net/http handlers can be placed behind the coordinator with Buffer,
// which records their output in memory and replays it on Render.
//
// # Errors
//
// HTTPError carries a status code and a machine-readable key. DefaultErrorHandler
// turns any error into a status code and logs it at a level matching its class.
package handler
