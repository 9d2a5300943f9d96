package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/taskboard/client/domain"
	"github.com/taskboard/client/repository"
)

type stubAuthAPI struct {
	login    func(ctx context.Context, creds repository.Credentials) (*domain.Session, error)
	signup   func(ctx context.Context, profile repository.Profile) (*domain.Session, error)
	userInfo func(ctx context.Context, token string) (*domain.User, error)
}

func (s *stubAuthAPI) Login(ctx context.Context, creds repository.Credentials) (*domain.Session, error) {
	if s.login == nil {
		return nil, errors.New("unexpected Login call")
	}
	return s.login(ctx, creds)
}

func (s *stubAuthAPI) Signup(ctx context.Context, profile repository.Profile) (*domain.Session, error) {
	if s.signup == nil {
		return nil, errors.New("unexpected Signup call")
	}
	return s.signup(ctx, profile)
}

func (s *stubAuthAPI) UserInfo(ctx context.Context, token string) (*domain.User, error) {
	if s.userInfo == nil {
		return nil, errors.New("unexpected UserInfo call")
	}
	return s.userInfo(ctx, token)
}

// memorySessions is an in-memory repository.SessionStore.
type memorySessions struct {
	session *domain.Session
	saves   int
	clears  int
}

func (m *memorySessions) Load() (*domain.Session, error) {
	if m.session == nil {
		return nil, nil
	}
	copied := *m.session
	return &copied, nil
}

func (m *memorySessions) Save(session *domain.Session) error {
	m.saves++
	copied := *session
	m.session = &copied
	return nil
}

func (m *memorySessions) Clear() error {
	m.clears++
	m.session = nil
	return nil
}

func TestLoginInstallsAndPersistsSession(t *testing.T) {
	api := &stubAuthAPI{
		login: func(ctx context.Context, creds repository.Credentials) (*domain.Session, error) {
			if creds.Email != "a@x.com" || creds.Password != "secret" {
				return nil, domain.NewError(domain.ErrCodeUnauthorized, "invalid credentials")
			}
			return &domain.Session{
				User:  domain.User{ID: "u1", Email: "a@x.com", Role: domain.RoleMember},
				Token: "tok-1",
			}, nil
		},
	}
	sessions := &memorySessions{}
	s := New(api, sessions, nil)

	session, err := s.Login(context.Background(), repository.Credentials{Email: "a@x.com", Password: "secret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if session.Token == "" {
		t.Error("session token must be non-empty")
	}
	if session.User.Email != "a@x.com" {
		t.Errorf("session user email = %q, want a@x.com", session.User.Email)
	}

	// Subsequent protected calls attach that token.
	token, err := s.Token()
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if token != "tok-1" {
		t.Errorf("token = %q, want tok-1", token)
	}

	if sessions.saves != 1 {
		t.Errorf("session persisted %d times, want 1", sessions.saves)
	}
}

func TestLoginFailureRecordsError(t *testing.T) {
	api := &stubAuthAPI{
		login: func(ctx context.Context, creds repository.Credentials) (*domain.Session, error) {
			return nil, domain.NewError(domain.ErrCodeUnauthorized, "invalid credentials")
		},
	}
	s := New(api, &memorySessions{}, nil)

	if _, err := s.Login(context.Background(), repository.Credentials{}); err == nil {
		t.Fatal("expected login failure")
	}
	if status := s.Status(); status.Err == nil || status.Err.Message != "invalid credentials" {
		t.Errorf("expected recorded error, got %+v", status.Err)
	}
	if _, err := s.Token(); !domain.IsDomainError(err, domain.ErrCodeUnauthorized) {
		t.Error("no session must yield authentication-required")
	}
}

func TestRestoreFromPersistedSession(t *testing.T) {
	sessions := &memorySessions{
		session: &domain.Session{User: domain.User{ID: "u1", Email: "a@x.com"}, Token: "tok-1"},
	}
	s := New(&stubAuthAPI{}, sessions, nil)

	got := s.Session()
	if got == nil || got.Token != "tok-1" {
		t.Fatalf("expected restored session, got %+v", got)
	}
}

func TestLogoutPurgesDurableStorage(t *testing.T) {
	sessions := &memorySessions{
		session: &domain.Session{User: domain.User{ID: "u1"}, Token: "tok-1"},
	}
	s := New(&stubAuthAPI{}, sessions, nil)

	if err := s.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if s.Session() != nil {
		t.Error("session should be gone from memory")
	}
	if sessions.clears != 1 {
		t.Errorf("durable storage cleared %d times, want 1", sessions.clears)
	}
	if _, err := s.Token(); !domain.IsDomainError(err, domain.ErrCodeUnauthorized) {
		t.Error("token after logout must yield authentication-required")
	}
}

func TestFetchUserInfoRefreshesCachedUser(t *testing.T) {
	api := &stubAuthAPI{
		userInfo: func(ctx context.Context, token string) (*domain.User, error) {
			return &domain.User{ID: "u1", Name: "Ada Updated", Email: "a@x.com"}, nil
		},
	}
	sessions := &memorySessions{
		session: &domain.Session{User: domain.User{ID: "u1", Name: "Ada"}, Token: "tok-1"},
	}
	s := New(api, sessions, nil)

	user, err := s.FetchUserInfo(context.Background())
	if err != nil {
		t.Fatalf("fetch user info: %v", err)
	}
	if user.Name != "Ada Updated" {
		t.Errorf("user name = %q, want refreshed", user.Name)
	}
	if got := s.Session(); got.User.Name != "Ada Updated" {
		t.Errorf("cached user not refreshed: %+v", got.User)
	}
	if sessions.session.User.Name != "Ada Updated" {
		t.Error("refreshed user should be persisted")
	}
}

func TestFetchUserInfoWithoutSessionFailsFast(t *testing.T) {
	s := New(&stubAuthAPI{}, &memorySessions{}, nil)

	_, err := s.FetchUserInfo(context.Background())
	if !domain.IsDomainError(err, domain.ErrCodeUnauthorized) {
		t.Fatalf("expected authentication-required, got %v", err)
	}
}
