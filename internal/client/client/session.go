package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/fintrack/internal/client/models"
	"github.com/dmitrijs2005/fintrack/internal/filex"
)

const sessionFile = "session.json"

// SessionStore keeps the current session in a file readable only by the
// owner.
type SessionStore struct {
	path string
	now  func() time.Time
}

// NewSessionStore creates dir if needed and returns a store inside it.
func NewSessionStore(dir string) (*SessionStore, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}
	return &SessionStore{path: filepath.Join(abs, sessionFile), now: time.Now}, nil
}

func (s *SessionStore) Save(sess *models.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Load returns the saved session. A missing, unreadable or expired session
// yields ErrNoSession; an expired one is also removed.
func (s *SessionStore) Load() (*models.Session, error) {
	var sess models.Session
	if err := filex.DecodeFile(s.path, &sess); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("%w: %w", ErrNoSession, err)
	}

	if sess.Token == "" || sess.Expired(s.now()) {
		_ = s.Clear()
		return nil, ErrNoSession
	}
	return &sess, nil
}

func (s *SessionStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
