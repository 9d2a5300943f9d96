package repository

import (
	"context"

	"github.com/taskboard/client/domain"
)

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Profile is the signup payload.
type Profile struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthAPI talks to the backend's authentication endpoints.
type AuthAPI interface {
	Login(ctx context.Context, creds Credentials) (*domain.Session, error)
	Signup(ctx context.Context, profile Profile) (*domain.Session, error)
	UserInfo(ctx context.Context, token string) (*domain.User, error)
}
