package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrymomot/workersession/pkg/session"
)

const filePrefix = "sess_"

// LocalStore implements session.Store with one file per session, named
// sess_<token>, inside a single directory. Writes go to a temp file that is
// renamed into place, so readers never see a partial record.
type LocalStore struct {
	dir string // absolute
}

// NewLocalStore creates dir with owner-only permissions if it doesn't exist.
func NewLocalStore(dir string) (*LocalStore, error) {
	if dir == "" {
		return nil, ErrInvalidConfig
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToGetAbsolutePath, err)
	}
	if err := os.MkdirAll(abs, 0o700); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	return &LocalStore{dir: abs}, nil
}

// path maps a token to its file. Tokens that are not valid session ids are
// rejected, which also rules out path traversal.
func (s *LocalStore) path(token string) (string, error) {
	if !session.ValidToken(token) {
		return "", ErrInvalidToken
	}
	return filepath.Join(s.dir, filePrefix+token), nil
}

// Get reads the session file. Unknown and malformed tokens are both reported as not found.
func (s *LocalStore) Get(ctx context.Context, token string) (*session.Session, error) {
	p, err := s.path(token)
	if err != nil {
		return nil, session.ErrSessionNotFound
	}

	raw, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, session.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}

	sess, err := decodeSession(raw)
	if err != nil {
		return nil, err
	}
	if sess.IsExpired() {
		return nil, session.ErrSessionExpired
	}
	return sess, nil
}

func (s *LocalStore) Save(ctx context.Context, sess *session.Session) error {
	if sess == nil {
		return session.ErrInvalidSession
	}
	p, err := s.path(sess.Token)
	if err != nil {
		return errors.Join(session.ErrInvalidSession, err)
	}

	raw, err := encodeSession(sess)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp_"+filePrefix+"*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	tmpName := tmp.Name()

	_, werr := tmp.Write(raw)
	cerr := tmp.Close()
	if err := errors.Join(werr, cerr); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}

	if err := os.Rename(tmpName, p); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	return nil
}

// Delete removes the session file. Missing files and malformed tokens are ignored.
func (s *LocalStore) Delete(ctx context.Context, token string) error {
	p, err := s.path(token)
	if err != nil {
		return nil
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", ErrFailedToDeleteFile, err)
	}
	return nil
}

// DeleteExpired scans the directory and removes expired or unreadable
// session files. It stops early when ctx is done.
func (s *LocalStore) DeleteExpired(ctx context.Context) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToReadDirectory, err)
	}

	now := time.Now()
	var errs []error
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), filePrefix) {
			continue
		}

		p := filepath.Join(s.dir, entry.Name())
		raw, err := os.ReadFile(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}

		sess, err := decodeSession(raw)
		if err == nil && !sess.ExpiredAt(now) {
			continue
		}
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrFailedToDeleteFile}, errs...)...)
	}
	return nil
}

// Dir returns the absolute directory sessions are stored in.
func (s *LocalStore) Dir() string {
	return s.dir
}
