package rest

import (
	"context"

	"github.com/taskboard/client/domain"
	"github.com/taskboard/client/repository"
)

// AuthAPI implements repository.AuthAPI against /api/auth.
type AuthAPI struct {
	client *Client
}

func NewAuthAPI(client *Client) *AuthAPI {
	return &AuthAPI{client: client}
}

type sessionResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

func (a *AuthAPI) Login(ctx context.Context, creds repository.Credentials) (*domain.Session, error) {
	var out sessionResponse
	if err := a.client.mutate(ctx, "POST", "/api/auth/login", "", creds, &out); err != nil {
		return nil, err
	}
	return &domain.Session{User: out.User, Token: out.Token}, nil
}

func (a *AuthAPI) Signup(ctx context.Context, profile repository.Profile) (*domain.Session, error) {
	var out sessionResponse
	if err := a.client.mutate(ctx, "POST", "/api/auth/signup", "", profile, &out); err != nil {
		return nil, err
	}
	return &domain.Session{User: out.User, Token: out.Token}, nil
}

func (a *AuthAPI) UserInfo(ctx context.Context, token string) (*domain.User, error) {
	var out struct {
		User domain.User `json:"user"`
	}
	if err := a.client.get(ctx, "/api/auth/user-info", nil, token, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}
