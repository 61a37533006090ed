package handler

import (
	"io"
	"net/http"
)

type textResponse struct {
	status int
	body   string
}

func (t textResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(t.status)
	_, err := io.WriteString(w, t.body)
	return err
}

// Text creates a 200 OK plain text response.
func Text(body string) Response {
	return textResponse{status: http.StatusOK, body: body}
}

// TextWithStatus creates a plain text response with a custom status code.
func TextWithStatus(status int, body string) Response {
	return textResponse{status: status, body: body}
}
