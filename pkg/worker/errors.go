package worker

import "errors"

var (
	// ErrPoolClosed indicates the pool no longer accepts requests
	ErrPoolClosed = errors.New("worker.pool_closed")

	// ErrHandlerPanic indicates the handler panicked; the worker recovered and keeps serving
	ErrHandlerPanic = errors.New("worker.handler_panic")

	// ErrRequestCanceled indicates the request context ended before a worker was free
	ErrRequestCanceled = errors.New("worker.request_canceled")

	ErrNoFactory = errors.New("worker.no_middleware_factory")
	ErrNoHandler = errors.New("worker.no_handler")
)
