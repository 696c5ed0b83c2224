package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// Value patterns that are secrets regardless of field name.
var (
	// Session and bearer tokens are JWTs: three base64url segments.
	jwtPattern = regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`)

	// Authorization header values.
	bearerPattern = regexp.MustCompile(`(?i)^bearer\s+.+$`)
)

// DefaultRedactOptions returns the masq options applied to every log record.
// The field list covers the credentials this service handles: the admin
// password, minted session tokens, the cloud store API key, and anything
// arriving in Authorization headers or the admin cookie.
//
// To extend for one logger, append options:
//
//	opts := append(logging.DefaultRedactOptions(),
//	    masq.WithFieldName("MySecretField"),
//	)
func DefaultRedactOptions() []masq.Option {
	return []masq.Option{
		masq.WithFieldName("password"),
		masq.WithFieldName("admin_password"),
		masq.WithFieldName("adminPassword"),
		masq.WithFieldName("secret"),
		masq.WithFieldName("token"),
		masq.WithFieldName("admin_token"),
		masq.WithFieldName("session_token"),
		masq.WithFieldName("accessToken"),
		masq.WithFieldName("access_token"),
		masq.WithFieldName("apiKey"),
		masq.WithFieldName("apikey"),
		masq.WithFieldName("api_key"),
		masq.WithFieldName("credential"),
		masq.WithFieldName("credentials"),
		masq.WithFieldName("authorization"),
		masq.WithFieldName("auth"),
		masq.WithFieldName("cookie"),
		masq.WithFieldName("privateKey"),
		masq.WithFieldName("private_key"),
		masq.WithFieldName("secretKey"),
		masq.WithFieldName("secret_key"),

		masq.WithFieldPrefix("secret"),
		masq.WithFieldPrefix("private"),

		masq.WithRegex(jwtPattern),
		masq.WithRegex(bearerPattern),
	}
}

// NewReplaceAttr builds the ReplaceAttr function handlers use to redact
// sensitive attributes, extended with any additional masq options.
func NewReplaceAttr(opts ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	allOpts := append(DefaultRedactOptions(), opts...)
	return masq.New(allOpts...)
}
