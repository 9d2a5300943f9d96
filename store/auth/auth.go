package auth

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/taskboard/client/domain"
	"github.com/taskboard/client/repository"
	"github.com/taskboard/client/store"
)

// Store owns the single process-wide session. It persists the session to
// durable storage on login/signup and restores it at construction.
type Store struct {
	api      repository.AuthAPI
	sessions repository.SessionStore
	logger   *zap.Logger

	mu      sync.Mutex
	session *domain.Session
	op      store.Async
}

// New builds the auth store and restores any persisted session.
func New(api repository.AuthAPI, sessions repository.SessionStore, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		api:      api,
		sessions: sessions,
		logger:   logger,
	}
	s.restore()
	return s
}

func (s *Store) restore() {
	if s.sessions == nil {
		return
	}
	session, err := s.sessions.Load()
	if err != nil {
		s.logger.Warn("failed to restore session", zap.Error(err))
		return
	}
	if session != nil {
		s.mu.Lock()
		s.session = session
		s.mu.Unlock()
		s.logger.Info("session restored", zap.String("email", session.User.Email))
	}
}

// Login authenticates and installs the resulting session.
func (s *Store) Login(ctx context.Context, creds repository.Credentials) (*domain.Session, error) {
	s.begin()

	session, err := s.api.Login(ctx, creds)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.install(session)
	return s.Session(), nil
}

// Signup registers a new account and installs the resulting session.
func (s *Store) Signup(ctx context.Context, profile repository.Profile) (*domain.Session, error) {
	s.begin()

	session, err := s.api.Signup(ctx, profile)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.install(session)
	return s.Session(), nil
}

// FetchUserInfo refreshes the cached user profile with the existing token.
func (s *Store) FetchUserInfo(ctx context.Context) (*domain.User, error) {
	token, err := s.Token()
	if err != nil {
		return nil, err
	}

	user, err := s.api.UserInfo(ctx, token)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.session != nil {
		s.session.User = *user
		s.persistLocked()
	}
	s.mu.Unlock()

	copied := *user
	return &copied, nil
}

// Logout destroys the session in memory and in durable storage.
func (s *Store) Logout() error {
	s.mu.Lock()
	s.session = nil
	s.op = store.Async{}
	s.mu.Unlock()

	if s.sessions == nil {
		return nil
	}
	if err := s.sessions.Clear(); err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "failed to clear session storage", err)
	}
	return nil
}

// Token implements store.TokenSource. It fails fast with an
// authentication-required error when no valid session exists.
func (s *Store) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.session.Valid() {
		return "", domain.ErrAuthRequired
	}
	return s.session.Token, nil
}

// Session returns a copy of the active session, or nil when logged out.
func (s *Store) Session() *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil
	}
	copied := *s.session
	return &copied
}

// Status reports the lifecycle of the last auth operation.
func (s *Store) Status() store.Async {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.op
}

func (s *Store) begin() {
	s.mu.Lock()
	s.op.Begin()
	s.mu.Unlock()
}

func (s *Store) fail(err error) {
	s.mu.Lock()
	s.op.Fail(err)
	s.mu.Unlock()
	s.logger.Warn("auth operation failed", zap.Error(err))
}

func (s *Store) install(session *domain.Session) {
	s.mu.Lock()
	s.session = session
	s.op.Resolve()
	s.persistLocked()
	s.mu.Unlock()
}

// persistLocked saves the session best-effort; a storage failure must not
// undo a successful login.
func (s *Store) persistLocked() {
	if s.sessions == nil || s.session == nil {
		return
	}
	if err := s.sessions.Save(s.session); err != nil {
		s.logger.Warn("failed to persist session", zap.Error(err))
	}
}
