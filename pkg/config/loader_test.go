package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/workersession/pkg/config"
	"github.com/dmitrymomot/workersession/pkg/session"
	"github.com/dmitrymomot/workersession/pkg/worker"
)

type storeSelection struct {
	Kind string `env:"TEST_SESSION_STORE" envDefault:"memory"`
}

type postgresURL struct {
	URL string `env:"TEST_PG_CONN_URL,required"`
}

type mustLoadFailure struct {
	URL string `env:"TEST_MUST_LOAD_URL,required"`
}

func TestLoad_SessionDefaults(t *testing.T) {
	for _, key := range []string{"SESSION_NAME", "SESSION_MAX_LIFETIME", "SESSION_STRICT_MODE", "SESSION_COOKIE_PATH"} {
		os.Unsetenv(key)
	}

	var cfg session.Config
	require.NoError(t, config.Load(&cfg))

	want := session.DefaultConfig()
	assert.Equal(t, want.CookieName, cfg.CookieName)
	assert.Equal(t, want.MaxLifetime, cfg.MaxLifetime)
	assert.Equal(t, want.StrictMode, cfg.StrictMode)
	assert.Equal(t, want.CleanupInterval, cfg.CleanupInterval)
	assert.Equal(t, "/", cfg.Cookie.Path)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_WorkerFromEnv(t *testing.T) {
	t.Setenv("WORKER_COUNT", "8")
	t.Setenv("WORKER_MAX_JOBS", "500")

	var cfg worker.Config
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, uint64(500), cfg.MaxJobs)
}

func TestLoad_CachedPerType(t *testing.T) {
	t.Setenv("TEST_SESSION_STORE", "redis")

	var first storeSelection
	require.NoError(t, config.Load(&first))

	t.Setenv("TEST_SESSION_STORE", "postgres")

	var second storeSelection
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "redis", second.Kind, "second load is served from the cache")

	config.ResetCache()
	var third storeSelection
	require.NoError(t, config.Load(&third))
	assert.Equal(t, "postgres", third.Kind)
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("TEST_PG_CONN_URL")

	var cfg postgresURL
	err := config.Load(&cfg)
	require.ErrorIs(t, err, config.ErrParsingConfig)

	assert.Panics(t, func() {
		var cfg mustLoadFailure
		config.MustLoad(&cfg)
	})
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *session.Config
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
}

func TestLoad_Durations(t *testing.T) {
	t.Setenv("SESSION_TEST_GC", "90s")

	type gcConfig struct {
		Interval time.Duration `env:"SESSION_TEST_GC"`
	}
	var cfg gcConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, 90*time.Second, cfg.Interval)
}
