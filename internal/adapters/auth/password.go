package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mortalnow/dan-s-bullshit/internal/domain"
	"github.com/mortalnow/dan-s-bullshit/internal/platform/config"
	"github.com/mortalnow/dan-s-bullshit/internal/ports"
)

// signingKeyPrefix domain-separates the session signing key from other
// uses of the admin password.
const signingKeyPrefix = "session-signing:"

// PasswordGate authenticates against a single shared admin password and
// mints signed session tokens for the browser. The signing key is
// derived from the password, so rotating the password invalidates every
// outstanding session.
type PasswordGate struct {
	secretDigest [sha256.Size]byte
	signingKey   []byte
	ttl          time.Duration
}

// NewPasswordGate builds the shared-secret gate from configuration.
func NewPasswordGate(cfg config.AuthConfig) (*PasswordGate, error) {
	if cfg.AdminPassword == "" {
		return nil, errors.New("admin password is required in password mode")
	}

	ttl := cfg.SessionTTL
	if ttl == 0 {
		ttl = config.DefaultSessionTTL
	}

	key := sha256.Sum256([]byte(signingKeyPrefix + cfg.AdminPassword))

	return &PasswordGate{
		secretDigest: sha256.Sum256([]byte(cfg.AdminPassword)),
		signingKey:   key[:],
		ttl:          ttl,
	}, nil
}

// Login checks the submitted password and mints a session token.
// Digests are compared rather than the raw strings so the comparison is
// constant time regardless of length.
func (g *PasswordGate) Login(_ context.Context, password string) (string, error) {
	submitted := sha256.Sum256([]byte(password))
	if subtle.ConstantTimeCompare(submitted[:], g.secretDigest[:]) != 1 {
		return "", domain.NewUnauthorizedError("invalid password")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   localAdminSubject,
		Issuer:    sessionIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.signingKey)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}

	return signed, nil
}

// Authenticate verifies a session token minted by Login.
func (g *PasswordGate) Authenticate(_ context.Context, credential string) (*domain.Identity, error) {
	if credential == "" {
		return nil, domain.NewUnauthorizedError("missing credential")
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(credential, claims,
		func(_ *jwt.Token) (any, error) { return g.signingKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, domain.NewUnauthorizedError("session token rejected")
	}

	return &domain.Identity{
		Subject: claims.Subject,
		Method:  domain.AuthMethodPassword,
	}, nil
}

var (
	_ ports.Authenticator = (*PasswordGate)(nil)
	_ ports.SessionIssuer = (*PasswordGate)(nil)
)
