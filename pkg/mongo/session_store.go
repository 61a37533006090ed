package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/workersession/pkg/session"
)

// sessionDocument is the stored shape of a session. The token is the document id.
type sessionDocument struct {
	Token          string         `bson:"_id"`
	SessionID      string         `bson:"session_id"`
	Data           map[string]any `bson:"data"`
	CreatedAt      time.Time      `bson:"created_at"`
	LastActivityAt time.Time      `bson:"last_activity_at"`
	ExpiresAt      time.Time      `bson:"expires_at"`
}

func toDocument(s *session.Session) sessionDocument {
	data := s.Data
	if data == nil {
		data = map[string]any{}
	}
	return sessionDocument{
		Token:          s.Token,
		SessionID:      s.ID.String(),
		Data:           data,
		CreatedAt:      s.CreatedAt,
		LastActivityAt: s.LastActivityAt,
		ExpiresAt:      s.ExpiresAt,
	}
}

func (d sessionDocument) toSession() (*session.Session, error) {
	id, err := uuid.Parse(d.SessionID)
	if err != nil {
		return nil, errors.Join(ErrCorruptedSession, err)
	}
	data := d.Data
	if data == nil {
		data = make(map[string]any)
	}
	return &session.Session{
		ID:             id,
		Token:          d.Token,
		Data:           data,
		CreatedAt:      d.CreatedAt,
		LastActivityAt: d.LastActivityAt,
		ExpiresAt:      d.ExpiresAt,
	}, nil
}

// SessionStore implements session.Store on a MongoDB collection.
type SessionStore struct {
	coll *mongo.Collection
}

// NewSessionStore uses collection in db; an empty name falls back to "sessions".
func NewSessionStore(db *mongo.Database, collection string) *SessionStore {
	if collection == "" {
		collection = "sessions"
	}
	return &SessionStore{coll: db.Collection(collection)}
}

// EnsureIndexes creates a TTL index on expires_at so MongoDB removes expired
// documents in the background. DeleteExpired still works without it.
func (s *SessionStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0).SetName("expires_at_ttl"),
	})
	return err
}

func (s *SessionStore) Get(ctx context.Context, token string) (*session.Session, error) {
	var doc sessionDocument
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: token}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, session.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	sess, err := doc.toSession()
	if err != nil {
		return nil, err
	}
	if sess.IsExpired() {
		return nil, session.ErrSessionExpired
	}
	return sess, nil
}

// Save replaces the document for the session token, inserting it if missing.
func (s *SessionStore) Save(ctx context.Context, sess *session.Session) error {
	if sess == nil || sess.Token == "" {
		return session.ErrInvalidSession
	}
	_, err := s.coll.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: sess.Token}},
		toDocument(sess),
		options.Replace().SetUpsert(true),
	)
	return err
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	_, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: token}})
	return err
}

func (s *SessionStore) DeleteExpired(ctx context.Context) error {
	_, err := s.coll.DeleteMany(ctx, bson.D{{Key: "expires_at", Value: bson.D{{Key: "$lt", Value: time.Now()}}}})
	return err
}
