package main

import (
	"github.com/dmitrymomot/workersession/pkg/file"
	"github.com/dmitrymomot/workersession/pkg/httpserver"
	"github.com/dmitrymomot/workersession/pkg/logger"
	"github.com/dmitrymomot/workersession/pkg/mongo"
	"github.com/dmitrymomot/workersession/pkg/pg"
	"github.com/dmitrymomot/workersession/pkg/redis"
	"github.com/dmitrymomot/workersession/pkg/session"
	"github.com/dmitrymomot/workersession/pkg/worker"
)

// Config is the sessiond configuration. Values come from the environment
// (and .env), then from the YAML file named by SESSIOND_CONFIG.
//
// Backend specific settings live in their own structs and are only loaded
// for the selected store, so their required variables don't have to be set
// when another store is in use.
type Config struct {
	Store   string            `env:"SESSION_STORE" envDefault:"memory" yaml:"store"` // memory, file, s3, redis, postgres or mongo
	Log     logger.Config     `yaml:"log"`
	HTTP    httpserver.Config `yaml:"http"`
	Session session.Config    `yaml:"session"`
	Worker  worker.Config     `yaml:"worker"`
	Files   file.Config       `yaml:"files"`
}

type redisConfig struct {
	Redis redis.Config `yaml:"redis"`
}

type postgresConfig struct {
	Postgres pg.Config `yaml:"postgres"`
}

type mongoConfig struct {
	Mongo mongo.Config `yaml:"mongo"`
}
