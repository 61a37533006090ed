package mongo

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dmitrymomot/workersession/pkg/session"
)

// SessionDocument exposes the document conversion to the external tests.
func SessionDocument(s *session.Session) any { return toDocument(s) }

// DecodeSessionDocument decodes raw BSON the way SessionStore.Get does.
func DecodeSessionDocument(raw []byte) (*session.Session, error) {
	var doc sessionDocument
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc.toSession()
}
