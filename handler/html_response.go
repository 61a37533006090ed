package handler

import (
	"net/http"

	"github.com/a-h/templ"
)

type htmlResponse struct {
	status    int
	component templ.Component
}

func (h htmlResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(h.status)
	return h.component.Render(r.Context(), w)
}

// HTML creates a 200 OK response from a templ component.
//
//	return handler.HTML(views.Counter(n)), nil
func HTML(component templ.Component) Response {
	return htmlResponse{status: http.StatusOK, component: component}
}

// HTMLWithStatus renders a templ component with a custom status code.
func HTMLWithStatus(status int, component templ.Component) Response {
	return htmlResponse{status: status, component: component}
}
