package pg

import "time"

type Config struct {
	ConnectionString  string        `env:"PG_CONN_URL,required" yaml:"conn_url"`
	MaxOpenConns      int32         `env:"PG_MAX_OPEN_CONNS" envDefault:"10" yaml:"max_open_conns"`
	MaxIdleConns      int32         `env:"PG_MAX_IDLE_CONNS" envDefault:"5" yaml:"max_idle_conns"`
	HealthCheckPeriod time.Duration `env:"PG_HEALTHCHECK_PERIOD" envDefault:"1m" yaml:"healthcheck_period"`
	MaxConnIdleTime   time.Duration `env:"PG_MAX_CONN_IDLE_TIME" envDefault:"10m" yaml:"max_conn_idle_time"`
	MaxConnLifetime   time.Duration `env:"PG_MAX_CONN_LIFETIME" envDefault:"30m" yaml:"max_conn_lifetime"`

	RetryAttempts int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3" yaml:"retry_attempts"`
	RetryInterval time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"5s" yaml:"retry_interval"` // multiplied by the attempt number

	MigrationsTable string `env:"PG_MIGRATIONS_TABLE" envDefault:"schema_migrations" yaml:"migrations_table"`
	AutoMigrate     bool   `env:"PG_AUTO_MIGRATE" envDefault:"true" yaml:"auto_migrate"` // apply the embedded sessions schema on startup
}
