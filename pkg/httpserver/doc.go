// Package httpserver wraps net/http with graceful shutdown, configurable
// timeouts, ordered resource cleanup and health-check handlers.
//
// Run blocks until the context is cancelled or SIGINT/SIGTERM arrives, then
// drains the listener with http.Server.Shutdown. Resources registered with
// WithCloser (a worker.Pool, a store client) are released afterwards in
// reverse registration order, within the same ShutdownTimeout.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP,
//		httpserver.WithLogger(log),
//		httpserver.WithCloser("worker_pool", func(context.Context) error { return pool.Close() }),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Listen errors are wrapped with ErrStart; listener drain and closer errors
// are joined with ErrShutdown.
package httpserver
