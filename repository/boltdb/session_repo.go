package boltdb

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/taskboard/client/domain"
)

var (
	bucketName = []byte("session")
	keyToken   = []byte("token")
	keyUser    = []byte("user")
)

// SessionStore persists the session token and user profile in a local
// BoltDB file so a restarted process resumes logged in.
type SessionStore struct {
	db *bolt.DB
}

// Open initializes the BoltDB file and ensures the session bucket exists.
func Open(path string) (*SessionStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &SessionStore{db: db}, nil
}

// Load restores the persisted session. It returns (nil, nil) when either key
// is absent, so a missing or partially written session reads as logged out.
func (s *SessionStore) Load() (*domain.Session, error) {
	if s == nil || s.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}

	var session *domain.Session
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		token := b.Get(keyToken)
		userRaw := b.Get(keyUser)
		if len(token) == 0 || len(userRaw) == 0 {
			return nil
		}
		var user domain.User
		if err := json.Unmarshal(userRaw, &user); err != nil {
			return nil
		}
		session = &domain.Session{
			User:  user,
			Token: string(token),
		}
		return nil
	})
	return session, err
}

// Save writes the token and user under their own keys.
func (s *SessionStore) Save(session *domain.Session) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	if session == nil {
		return s.Clear()
	}

	userRaw, err := json.Marshal(session.User)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		if err := b.Put(keyToken, []byte(session.Token)); err != nil {
			return err
		}
		return b.Put(keyUser, userRaw)
	})
}

// Clear removes both keys; called on logout.
func (s *SessionStore) Clear() error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		if err := b.Delete(keyToken); err != nil {
			return err
		}
		return b.Delete(keyUser)
	})
}

// Close releases the underlying database file.
func (s *SessionStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
