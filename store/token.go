package store

// TokenSource supplies the bearer token for protected calls. Implementations
// return a typed authentication-required error when no valid session exists,
// so callers fail fast client-side instead of relying on the server's 401.
type TokenSource interface {
	Token() (string, error)
}
