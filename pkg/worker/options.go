package worker

import (
	"log/slog"

	"github.com/dmitrymomot/workersession/handler"
)

// Option configures a Pool
type Option func(*options)

type options struct {
	workers      int
	maxJobs      uint64
	logger       *slog.Logger
	errorHandler handler.ErrorHandler
}

// WithWorkers sets the number of workers. Values below one are ignored.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithMaxJobs makes a worker replace its session middleware after serving n
// requests. Zero disables recycling.
func WithMaxJobs(n uint64) Option {
	return func(o *options) {
		o.maxJobs = n
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithErrorHandler sets the handler ServeHTTP uses for failed requests
func WithErrorHandler(h handler.ErrorHandler) Option {
	return func(o *options) {
		if h != nil {
			o.errorHandler = h
		}
	}
}
