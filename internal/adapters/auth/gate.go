// Package auth implements the admin authentication gate. Exactly one
// mode is active per process: a shared-secret password that mints local
// session tokens, or externally-issued bearer JWTs verified against a
// JWKS endpoint with an email allowlist.
package auth

import (
	"context"
	"fmt"

	"github.com/MicahParks/keyfunc/v3"

	"github.com/mortalnow/dan-s-bullshit/internal/platform/config"
	"github.com/mortalnow/dan-s-bullshit/internal/ports"
)

// localAdminSubject is the fixed principal of password-mode sessions.
const localAdminSubject = "local-admin"

// sessionIssuer is the issuer claim of locally-minted session tokens.
const sessionIssuer = "dan-s-bullshit"

// New builds the authenticator for the configured mode. The session
// issuer is nil in token mode, where logins happen at the external
// identity provider. In token mode the JWKS is fetched eagerly and
// refreshed in the background until ctx is canceled.
func New(ctx context.Context, cfg config.AuthConfig) (ports.Authenticator, ports.SessionIssuer, error) {
	switch cfg.Mode {
	case config.AuthModePassword:
		gate, err := NewPasswordGate(cfg)
		if err != nil {
			return nil, nil, err
		}

		return gate, gate, nil

	case config.AuthModeToken:
		jwks, err := keyfunc.NewDefaultCtx(ctx, []string{cfg.JWKSEndpoint})
		if err != nil {
			return nil, nil, fmt.Errorf("fetching jwks from %s: %w", cfg.JWKSEndpoint, err)
		}

		gate, err := NewTokenGate(cfg, jwks.Keyfunc)
		if err != nil {
			return nil, nil, err
		}

		return gate, nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown auth mode %q", cfg.Mode)
	}
}
