package file

import (
	"encoding/json"
	"errors"

	"github.com/dmitrymomot/workersession/pkg/session"
)

func encodeSession(s *session.Session) ([]byte, error) {
	return json.Marshal(s)
}

func decodeSession(raw []byte) (*session.Session, error) {
	var s session.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, errors.Join(ErrCorruptedSession, err)
	}
	if s.Data == nil {
		s.Data = make(map[string]any)
	}
	return &s, nil
}
