package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/workersession/pkg/file"
	"github.com/dmitrymomot/workersession/pkg/session"
)

// sid pads name into a well-formed session id
func sid(name string) string {
	return name + "-0123456789abcdef"
}

func TestLocalStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("save and get", func(t *testing.T) {
		t.Parallel()
		store, err := file.NewLocalStore(t.TempDir())
		require.NoError(t, err)

		sess := session.NewSession(sid("tok_1"), time.Now(), time.Hour)
		sess.Data["counter"] = 3
		require.NoError(t, store.Save(ctx, sess))

		_, err = os.Stat(filepath.Join(store.Dir(), "sess_" + sid("tok_1")))
		require.NoError(t, err)

		got, err := store.Get(ctx, sid("tok_1"))
		require.NoError(t, err)
		assert.Equal(t, sess.ID, got.ID)
		assert.Equal(t, float64(3), got.Data["counter"])
	})

	t.Run("save overwrites", func(t *testing.T) {
		t.Parallel()
		store, err := file.NewLocalStore(t.TempDir())
		require.NoError(t, err)

		sess := session.NewSession(sid("tok"), time.Now(), time.Hour)
		sess.Data["v"] = "a"
		require.NoError(t, store.Save(ctx, sess))
		sess.Data["v"] = "b"
		require.NoError(t, store.Save(ctx, sess))

		got, err := store.Get(ctx, sid("tok"))
		require.NoError(t, err)
		assert.Equal(t, "b", got.Data["v"])

		entries, err := os.ReadDir(store.Dir())
		require.NoError(t, err)
		assert.Len(t, entries, 1, "no temp files left behind")
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		store, err := file.NewLocalStore(t.TempDir())
		require.NoError(t, err)

		_, err = store.Get(ctx, "missing")
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
		_, err = store.Get(ctx, "../../etc/passwd")
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
		_, err = store.Get(ctx, "short")
		assert.ErrorIs(t, err, session.ErrSessionNotFound, "tokens below the session id length are rejected")
	})

	t.Run("invalid token on save", func(t *testing.T) {
		t.Parallel()
		store, err := file.NewLocalStore(t.TempDir())
		require.NoError(t, err)

		err = store.Save(ctx, session.NewSession("../escape", time.Now(), time.Hour))
		assert.ErrorIs(t, err, session.ErrInvalidSession)
		assert.ErrorIs(t, err, file.ErrInvalidToken)
		assert.ErrorIs(t, store.Save(ctx, nil), session.ErrInvalidSession)
	})

	t.Run("expired", func(t *testing.T) {
		t.Parallel()
		store, err := file.NewLocalStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Save(ctx, session.NewSession(sid("old"), time.Now().Add(-2*time.Hour), time.Hour)))
		_, err = store.Get(ctx, sid("old"))
		assert.ErrorIs(t, err, session.ErrSessionExpired)
	})

	t.Run("corrupted", func(t *testing.T) {
		t.Parallel()
		store, err := file.NewLocalStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "sess_" + sid("bad")), []byte("{"), 0o600))
		_, err = store.Get(ctx, sid("bad"))
		assert.ErrorIs(t, err, file.ErrCorruptedSession)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()
		store, err := file.NewLocalStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Save(ctx, session.NewSession(sid("tok"), time.Now(), time.Hour)))
		require.NoError(t, store.Delete(ctx, sid("tok")))
		require.NoError(t, store.Delete(ctx, sid("tok")))
		require.NoError(t, store.Delete(ctx, "../nope"))

		_, err = store.Get(ctx, sid("tok"))
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("delete expired", func(t *testing.T) {
		t.Parallel()
		store, err := file.NewLocalStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Save(ctx, session.NewSession(sid("live"), time.Now(), time.Hour)))
		require.NoError(t, store.Save(ctx, session.NewSession(sid("dead"), time.Now().Add(-2*time.Hour), time.Hour)))
		require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "sess_junk"), []byte("not json"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "unrelated.txt"), []byte("keep"), 0o600))

		require.NoError(t, store.DeleteExpired(ctx))

		entries, err := os.ReadDir(store.Dir())
		require.NoError(t, err)
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		assert.ElementsMatch(t, []string{"sess_" + sid("live"), "unrelated.txt"}, names)
	})

	t.Run("empty dir rejected", func(t *testing.T) {
		t.Parallel()
		_, err := file.NewLocalStore("")
		assert.ErrorIs(t, err, file.ErrInvalidConfig)
	})
}
