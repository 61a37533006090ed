package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/workersession/pkg/session"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("save and get", func(t *testing.T) {
		t.Parallel()
		store := session.NewMemoryStore()
		sess := session.NewSession("token1", time.Now(), time.Hour)
		require.NoError(t, store.Save(ctx, sess))

		got, err := store.Get(ctx, "token1")
		require.NoError(t, err)
		assert.Equal(t, sess.ID, got.ID)
	})

	t.Run("invalid session", func(t *testing.T) {
		t.Parallel()
		store := session.NewMemoryStore()
		assert.ErrorIs(t, store.Save(ctx, nil), session.ErrInvalidSession)
		assert.ErrorIs(t, store.Save(ctx, session.NewSession("", time.Now(), time.Hour)), session.ErrInvalidSession)
	})

	t.Run("data isolation", func(t *testing.T) {
		t.Parallel()
		store := session.NewMemoryStore()
		sess := session.NewSession("token2", time.Now(), time.Hour)
		sess.Data["key"] = "value"
		require.NoError(t, store.Save(ctx, sess))

		sess.Data["key"] = "modified"

		got, err := store.Get(ctx, "token2")
		require.NoError(t, err)
		assert.Equal(t, "value", got.Data["key"])

		got.Data["key"] = "changed by reader"
		again, err := store.Get(ctx, "token2")
		require.NoError(t, err)
		assert.Equal(t, "value", again.Data["key"])
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		_, err := session.NewMemoryStore().Get(ctx, "missing")
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("expired is removed on get", func(t *testing.T) {
		t.Parallel()
		store := session.NewMemoryStore()
		require.NoError(t, store.Save(ctx, session.NewSession("old", time.Now().Add(-2*time.Hour), time.Hour)))

		_, err := store.Get(ctx, "old")
		assert.ErrorIs(t, err, session.ErrSessionExpired)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()
		store := session.NewMemoryStore()
		require.NoError(t, store.Save(ctx, session.NewSession("t", time.Now(), time.Hour)))
		require.NoError(t, store.Delete(ctx, "t"))
		require.NoError(t, store.Delete(ctx, "t"))
		assert.Equal(t, 0, store.Len())
	})

	t.Run("delete expired", func(t *testing.T) {
		t.Parallel()
		store := session.NewMemoryStore()
		require.NoError(t, store.Save(ctx, session.NewSession("live", time.Now(), time.Hour)))
		require.NoError(t, store.Save(ctx, session.NewSession("dead", time.Now().Add(-2*time.Hour), time.Hour)))

		require.NoError(t, store.DeleteExpired(ctx))
		assert.Equal(t, 1, store.Len())
		_, err := store.Get(ctx, "live")
		assert.NoError(t, err)
	})
}

func TestCollector(t *testing.T) {
	t.Parallel()

	t.Run("collect removes expired", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		store := session.NewMemoryStore()
		require.NoError(t, store.Save(ctx, session.NewSession("dead", time.Now().Add(-2*time.Hour), time.Hour)))

		require.NoError(t, session.NewCollector(store, time.Minute, nil).Collect(ctx))
		assert.Equal(t, 0, store.Len())
	})

	t.Run("run until canceled", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		store := session.NewMemoryStore()
		require.NoError(t, store.Save(ctx, session.NewSession("dead", time.Now().Add(-2*time.Hour), time.Hour)))

		done := make(chan error, 1)
		go func() { done <- session.NewCollector(store, 5*time.Millisecond, nil).Run(ctx) }()

		assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 5*time.Millisecond)
		cancel()
		assert.NoError(t, <-done)
	})

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, session.NewCollector(session.NewMemoryStore(), 0, nil).Run(context.Background()))
	})
}

func TestConfig(t *testing.T) {
	t.Parallel()

	cfg := session.DefaultConfig()
	assert.Equal(t, "sid", cfg.CookieName)
	assert.Equal(t, 24*time.Minute, cfg.MaxLifetime)
	assert.True(t, cfg.StrictMode)
	assert.Equal(t, 5*time.Minute, cfg.CleanupInterval)
	assert.Equal(t, "/", cfg.Cookie.Path)
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.MaxLifetime = 0
	bad.Cookie.SameSite = "None"
	err := bad.Validate()
	require.ErrorIs(t, err, session.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "max lifetime")
}
