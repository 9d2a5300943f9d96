package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Session is the single process-wide authentication state: the logged-in
// user plus the opaque bearer token the backend issued for it.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Valid reports whether the session can authorize protected calls.
func (s *Session) Valid() bool {
	return s != nil && s.Token != "" && !s.TokenExpired(time.Now())
}

// TokenExpired checks the token's exp claim without verifying the signature.
// The token stays opaque to the client; the claim read only lets protected
// calls fail fast locally instead of waiting for the server's 401. Tokens
// that do not parse as JWTs are treated as non-expiring.
func (s *Session) TokenExpired(reference time.Time) bool {
	if s == nil || s.Token == "" {
		return true
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	return !claims.ExpiresAt.After(reference)
}
