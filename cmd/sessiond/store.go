package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/workersession/pkg/config"
	"github.com/dmitrymomot/workersession/pkg/file"
	"github.com/dmitrymomot/workersession/pkg/logger"
	"github.com/dmitrymomot/workersession/pkg/mongo"
	"github.com/dmitrymomot/workersession/pkg/pg"
	"github.com/dmitrymomot/workersession/pkg/redis"
	"github.com/dmitrymomot/workersession/pkg/session"
)

var errUnknownStore = errors.New("sessiond.unknown_store")

// backend is an opened session store with its readiness check and the
// function releasing its connections.
type backend struct {
	store  session.Store
	health []func(context.Context) error
	close  func(context.Context) error
}

func noClose(context.Context) error { return nil }

// openStore connects the store selected by cfg.Store. path is the optional
// YAML file the backend settings are overlaid from.
func openStore(ctx context.Context, cfg Config, path string, log *slog.Logger) (*backend, error) {
	log = log.With(logger.Store(cfg.Store))

	switch cfg.Store {
	case "", "memory":
		return &backend{store: session.NewMemoryStore(), close: noClose}, nil

	case "file":
		store, err := file.NewLocalStore(cfg.Files.Dir)
		if err != nil {
			return nil, err
		}
		log.InfoContext(ctx, "using file session store", slog.String("dir", store.Dir()))
		return &backend{store: store, close: noClose}, nil

	case "s3":
		store, err := file.NewS3Store(ctx, cfg.Files.S3)
		if err != nil {
			return nil, err
		}
		log.InfoContext(ctx, "using s3 session store", slog.String("bucket", cfg.Files.S3.Bucket))
		return &backend{store: store, close: noClose}, nil

	case "redis":
		var rc redisConfig
		if err := config.LoadFile(path, &rc); err != nil {
			return nil, err
		}
		client, err := redis.Connect(ctx, rc.Redis)
		if err != nil {
			return nil, err
		}
		store := redis.NewSessionStoreFromConfig(client, rc.Redis)
		log.InfoContext(ctx, "using redis session store")
		return &backend{
			store:  store,
			health: []func(context.Context) error{store.Healthcheck()},
			close:  func(context.Context) error { return client.Close() },
		}, nil

	case "postgres":
		var pc postgresConfig
		if err := config.LoadFile(path, &pc); err != nil {
			return nil, err
		}
		pool, err := pg.Connect(ctx, pc.Postgres)
		if err != nil {
			return nil, err
		}
		if pc.Postgres.AutoMigrate {
			if err := pg.Migrate(ctx, pool, pc.Postgres, log); err != nil {
				pool.Close()
				return nil, err
			}
		}
		log.InfoContext(ctx, "using postgres session store")
		return &backend{
			store:  pg.NewSessionStore(pool),
			health: []func(context.Context) error{pg.Healthcheck(pool)},
			close: func(context.Context) error {
				pool.Close()
				return nil
			},
		}, nil

	case "mongo":
		var mc mongoConfig
		if err := config.LoadFile(path, &mc); err != nil {
			return nil, err
		}
		db, err := mongo.NewWithDatabase(ctx, mc.Mongo)
		if err != nil {
			return nil, err
		}
		store := mongo.NewSessionStore(db, mc.Mongo.Collection)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = db.Client().Disconnect(ctx)
			return nil, err
		}
		log.InfoContext(ctx, "using mongo session store", slog.String("database", mc.Mongo.Database))
		return &backend{
			store:  store,
			health: []func(context.Context) error{mongo.Healthcheck(db.Client())},
			close:  db.Client().Disconnect,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", errUnknownStore, cfg.Store)
	}
}
