// Package logger builds log/slog loggers for the session worker runtime.
//
// New applies functional options (format, level, output, static attributes)
// and wraps the resulting handler with LogHandlerDecorator, which pulls
// request-scoped attributes such as the request id out of the context on every
// log call:
//
//	log := logger.New(
//	    logger.WithEnvironment("production", "sessiond"),
//	    logger.WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
//	        id := middleware.GetReqID(ctx)
//	        return logger.RequestID(id), id != ""
//	    }),
//	)
//
// NewFromConfig does the same from a Config populated by pkg/config.
//
// Attribute helpers (Error, WorkerID, Component, ...) keep key names consistent
// across packages.
package logger
