package ports

import (
	"context"

	"github.com/mortalnow/dan-s-bullshit/internal/domain"
)

// Authenticator resolves a presented credential to an admin identity.
// The credential is the raw token extracted from the Authorization header
// or the session cookie; how it is verified depends on the configured mode.
type Authenticator interface {
	// Authenticate verifies the credential and returns the resolved
	// identity. Returns domain.ErrUnauthorized for a missing, malformed,
	// expired, or badly-signed credential, and domain.ErrForbidden for a
	// verified credential whose principal is not an admin.
	Authenticate(ctx context.Context, credential string) (*domain.Identity, error)
}

// SessionIssuer mints opaque session tokens after a successful password
// login. Only the shared-secret mode implements it; the token mode relies
// on externally-issued bearer tokens.
type SessionIssuer interface {
	// Login checks the submitted password against the configured secret
	// and returns a session token to be set as a cookie.
	// Returns domain.ErrUnauthorized on mismatch.
	Login(ctx context.Context, password string) (token string, err error)
}
