package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mortalnow/dan-s-bullshit/internal/domain"
	"github.com/mortalnow/dan-s-bullshit/internal/platform/config"
	"github.com/mortalnow/dan-s-bullshit/internal/ports"
)

// tokenClaims are the claims read from externally-issued bearer tokens.
type tokenClaims struct {
	jwt.RegisteredClaims

	Email string `json:"email"`
}

// TokenGate authenticates externally-issued bearer JWTs. Signatures are
// verified through the supplied keyfunc (backed by a JWKS in
// production), and the verified email claim must be on the allowlist.
type TokenGate struct {
	keyfunc  jwt.Keyfunc
	issuer   string
	audience string
	allowed  map[string]struct{}
}

// NewTokenGate builds the bearer-token gate. The keyfunc is injected so
// tests can verify against local keys instead of a live JWKS.
func NewTokenGate(cfg config.AuthConfig, kf jwt.Keyfunc) (*TokenGate, error) {
	if kf == nil {
		return nil, errors.New("keyfunc is required in token mode")
	}
	if len(cfg.AllowedEmails) == 0 {
		return nil, errors.New("allowed emails are required in token mode")
	}

	allowed := make(map[string]struct{}, len(cfg.AllowedEmails))
	for _, email := range cfg.AllowedEmails {
		allowed[strings.ToLower(strings.TrimSpace(email))] = struct{}{}
	}

	return &TokenGate{
		keyfunc:  kf,
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		allowed:  allowed,
	}, nil
}

// Authenticate verifies the bearer token and checks the email allowlist.
// A bad token is unauthorized; a good token from the wrong person is
// forbidden.
func (g *TokenGate) Authenticate(_ context.Context, credential string) (*domain.Identity, error) {
	if credential == "" {
		return nil, domain.NewUnauthorizedError("missing credential")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{
			jwt.SigningMethodRS256.Alg(),
			jwt.SigningMethodES256.Alg(),
		}),
		jwt.WithExpirationRequired(),
	}
	if g.issuer != "" {
		opts = append(opts, jwt.WithIssuer(g.issuer))
	}
	if g.audience != "" {
		opts = append(opts, jwt.WithAudience(g.audience))
	}

	claims := &tokenClaims{}
	if _, err := jwt.ParseWithClaims(credential, claims, g.keyfunc, opts...); err != nil {
		return nil, domain.NewUnauthorizedError("bearer token rejected")
	}

	email := strings.ToLower(strings.TrimSpace(claims.Email))
	if email == "" {
		return nil, domain.NewForbiddenError("admin access", "token carries no email claim")
	}

	if _, ok := g.allowed[email]; !ok {
		return nil, domain.NewForbiddenError("admin access", "email is not on the allowlist")
	}

	return &domain.Identity{
		Subject: claims.Subject,
		Email:   email,
		Method:  domain.AuthMethodToken,
	}, nil
}

var _ ports.Authenticator = (*TokenGate)(nil)
