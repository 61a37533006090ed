package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/workersession/pkg/logger"
)

// ErrorHandler writes an error response for err. It is called when a Handler
// fails or a Response cannot be rendered.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// StatusCode maps an error to an HTTP status code. HTTPError values keep their
// code, context cancellation maps to 499, everything else to 500.
func StatusCode(err error) int {
	var httpErr HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.Is(err, context.Canceled):
		return ErrClientClosedRequest.Code
	default:
		return http.StatusInternalServerError
	}
}

// determineLogLevel maps HTTP status codes to appropriate log levels
func determineLogLevel(statusCode int) slog.Level {
	if statusCode < http.StatusInternalServerError {
		return slog.LevelWarn
	}
	return slog.LevelError
}

// DefaultErrorHandler logs the error and responds with a plain text status.
// The error message itself is only exposed for HTTPError values; server
// errors get the generic status text.
func DefaultErrorHandler(log *slog.Logger) ErrorHandler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return func(w http.ResponseWriter, r *http.Request, err error) {
		status := StatusCode(err)

		log.LogAttrs(r.Context(), determineLogLevel(status), "request error",
			logger.Error(err),
			slog.Int("status_code", status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		msg := http.StatusText(status)
		var httpErr HTTPError
		if errors.As(err, &httpErr) {
			msg = httpErr.Key
		}
		if msg == "" {
			msg = err.Error()
		}
		http.Error(w, msg, status)
	}
}
