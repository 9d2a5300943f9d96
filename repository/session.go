package repository

import "github.com/taskboard/client/domain"

// SessionStore persists the session across process restarts. Load returns
// (nil, nil) when no session has been saved.
type SessionStore interface {
	Load() (*domain.Session, error)
	Save(session *domain.Session) error
	Clear() error
}
