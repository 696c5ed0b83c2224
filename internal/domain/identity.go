package domain

// AuthMethod identifies how an admin identity was established.
type AuthMethod string

// Supported authentication methods.
const (
	// AuthMethodPassword is the shared-secret session mode.
	AuthMethodPassword AuthMethod = "password"

	// AuthMethodToken is the bearer-JWT mode verified against a JWKS.
	AuthMethodToken AuthMethod = "token"
)

// Identity is the resolved principal of an authenticated admin request.
type Identity struct {
	// Subject is the stable identifier of the principal. In password mode
	// this is the fixed local admin subject; in token mode it is the
	// token's subject claim.
	Subject string

	// Email is the verified email address, when the auth method carries one.
	Email string

	// Method records which authentication mode established this identity.
	Method AuthMethod
}

// Verifier returns the value recorded as VerifiedBy on moderated quotes:
// the email when present, otherwise the subject.
func (i *Identity) Verifier() string {
	if i.Email != "" {
		return i.Email
	}

	return i.Subject
}
