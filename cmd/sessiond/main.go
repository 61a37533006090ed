// Command sessiond serves a session-backed counter through a pool of
// persistent workers. Each worker owns a session engine that is reset for
// every request; the store behind it is picked with SESSION_STORE.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/workersession/handler"
	"github.com/dmitrymomot/workersession/pkg/config"
	"github.com/dmitrymomot/workersession/pkg/httpserver"
	"github.com/dmitrymomot/workersession/pkg/logger"
	"github.com/dmitrymomot/workersession/pkg/session"
	"github.com/dmitrymomot/workersession/pkg/worker"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("sessiond stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	path := os.Getenv("SESSIOND_CONFIG")

	var cfg Config
	if err := config.LoadFile(path, &cfg); err != nil {
		return err
	}
	if err := cfg.Session.Validate(); err != nil {
		return err
	}

	log, err := logger.NewFromConfig(cfg.Log, logger.WithContextExtractors(requestID))
	if err != nil {
		return err
	}
	logger.SetAsDefault(log)

	be, err := openStore(ctx, cfg, path, log)
	if err != nil {
		return err
	}

	pool, err := newPool(be.store, cfg, log)
	if err != nil {
		_ = be.close(ctx)
		return err
	}

	gcCtx, stopGC := context.WithCancel(ctx)
	gcDone := make(chan struct{})
	go func() {
		defer close(gcDone)
		_ = session.NewCollector(be.store, cfg.Session.CleanupInterval, log).Run(gcCtx)
	}()

	srv := httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithLogger(log),
		httpserver.WithCloser("session_store", be.close),
		httpserver.WithCloser("worker_pool", func(context.Context) error { return pool.Close() }),
		httpserver.WithCloser("session_gc", func(ctx context.Context) error {
			stopGC()
			select {
			case <-gcDone:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}),
	)

	log.InfoContext(ctx, "starting sessiond",
		logger.Store(cfg.Store),
		slog.Int("workers", pool.Size()),
	)
	return srv.Run(ctx, newRouter(pool, be.health, log))
}

func newPool(store session.Store, cfg Config, log *slog.Logger) (*worker.Pool, error) {
	return worker.NewFromConfig(newApp(log),
		func() *session.Middleware {
			// cfg.Session is validated at startup
			mw, _ := session.NewFromConfig(store, cfg.Session, session.WithLogger(log))
			return mw
		},
		cfg.Worker,
		worker.WithLogger(log),
		worker.WithErrorHandler(handler.DefaultErrorHandler(log)),
	)
}

func newRouter(pool http.Handler, health []func(context.Context) error, log *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)

	r.Get("/healthz", httpserver.HealthCheckHandler(log))
	r.Get("/readyz", httpserver.HealthCheckHandler(log, health...))
	r.Handle("/*", pool)
	return r
}

func requestID(ctx context.Context) (slog.Attr, bool) {
	id := middleware.GetReqID(ctx)
	return logger.RequestID(id), id != ""
}
