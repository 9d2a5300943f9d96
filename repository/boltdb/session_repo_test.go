package boltdb

import (
	"path/filepath"
	"testing"

	"github.com/taskboard/client/domain"
)

func openStore(t *testing.T) *SessionStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveLoadRoundtrip(t *testing.T) {
	s := openStore(t)

	saved := &domain.Session{
		User:  domain.User{ID: "u1", Name: "Ada", Email: "ada@x.com", Role: domain.RoleOwner},
		Token: "tok-1",
	}
	if err := s.Save(saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded == nil || loaded.Token != "tok-1" || loaded.User.Email != "ada@x.com" {
		t.Fatalf("unexpected session: %+v", loaded)
	}
}

func TestLoadEmptyStoreReadsLoggedOut(t *testing.T) {
	s := openStore(t)

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != nil {
		t.Fatalf("expected nil session, got %+v", loaded)
	}
}

func TestClearRemovesBothKeys(t *testing.T) {
	s := openStore(t)

	if err := s.Save(&domain.Session{User: domain.User{ID: "u1"}, Token: "tok-1"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != nil {
		t.Fatalf("expected logged out after clear, got %+v", loaded)
	}
}

func TestSaveNilClears(t *testing.T) {
	s := openStore(t)

	if err := s.Save(&domain.Session{User: domain.User{ID: "u1"}, Token: "tok-1"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(nil); err != nil {
		t.Fatalf("save nil: %v", err)
	}
	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != nil {
		t.Fatalf("expected cleared session, got %+v", loaded)
	}
}
