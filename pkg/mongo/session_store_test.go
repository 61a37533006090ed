package mongo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dmitrymomot/workersession/pkg/mongo"
	"github.com/dmitrymomot/workersession/pkg/session"
)

func TestSessionDocument(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	sess := session.NewSession("tok", now, time.Hour)
	sess.Data["counter"] = 5

	raw, err := bson.Marshal(mongo.SessionDocument(sess))
	require.NoError(t, err)

	var fields bson.M
	require.NoError(t, bson.Unmarshal(raw, &fields))
	assert.Equal(t, "tok", fields["_id"])
	assert.Equal(t, sess.ID.String(), fields["session_id"])
	assert.Contains(t, fields, "expires_at")

	got, err := mongo.DecodeSessionDocument(raw)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, "tok", got.Token)
	assert.True(t, sess.ExpiresAt.Equal(got.ExpiresAt))

	e := session.NewEngine(nil)
	require.NoError(t, e.Start(context.Background()))
	e.Set("counter", got.Data["counter"])
	n, ok := e.GetInt("counter")
	assert.True(t, ok, "bson integers must be readable through GetInt")
	assert.Equal(t, 5, n)
}

func TestSessionDocument_Corrupted(t *testing.T) {
	t.Parallel()

	raw, err := bson.Marshal(bson.D{{Key: "_id", Value: "tok"}, {Key: "session_id", Value: "nope"}})
	require.NoError(t, err)

	_, err = mongo.DecodeSessionDocument(raw)
	require.ErrorIs(t, err, mongo.ErrCorruptedSession)
}

func TestNew_Unreachable(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := mongo.New(ctx, mongo.Config{
		ConnectionURL:  "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=100",
		ConnectTimeout: 100 * time.Millisecond,
		RetryAttempts:  1,
	})
	require.ErrorIs(t, err, mongo.ErrFailedToConnectToMongo)
}
