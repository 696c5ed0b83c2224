package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mortalnow/dan-s-bullshit/internal/adapters/http/dto"
	"github.com/mortalnow/dan-s-bullshit/internal/domain"
	"github.com/mortalnow/dan-s-bullshit/internal/ports"
)

const (
	// CookieAdminToken is the session cookie consulted when no bearer
	// header is present. The web login flow sets it.
	CookieAdminToken = "admin_token"

	// ContextKeyIdentity is the gin context key for the authenticated admin.
	ContextKeyIdentity = "identity"

	headerAuthorization = "Authorization"
	bearerPrefix        = "Bearer "
)

// ExtractCredential pulls the admin credential from the request.
// The Authorization header (Bearer scheme) wins over the session cookie,
// so API clients and the browser flow share the same protected routes.
// Returns empty string when neither carries a credential.
func ExtractCredential(c *gin.Context) string {
	if header := c.GetHeader(headerAuthorization); header != "" {
		if token, ok := strings.CutPrefix(header, bearerPrefix); ok {
			return strings.TrimSpace(token)
		}
	}

	if cookie, err := c.Cookie(CookieAdminToken); err == nil && cookie != "" {
		return cookie
	}

	return ""
}

// GetIdentity retrieves the authenticated identity from the gin context.
// Returns nil if the request has not passed RequireAdmin.
func GetIdentity(c *gin.Context) *domain.Identity {
	if v, exists := c.Get(ContextKeyIdentity); exists {
		if identity, ok := v.(*domain.Identity); ok {
			return identity
		}
	}

	return nil
}

// RequireAdmin returns middleware that authenticates admin API requests.
// A missing credential or one the authenticator rejects aborts with 401;
// a verified principal that is not an admin aborts with 403. On success
// the resolved identity is stored in the context for handlers.
func RequireAdmin(authn ports.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		credential := ExtractCredential(c)
		if credential == "" {
			dto.AbortWithErrorCode(c, dto.ErrorCodeUnauthorized, "authentication required")
			return
		}

		identity, err := authn.Authenticate(c.Request.Context(), credential)
		if err != nil {
			dto.AbortWithError(c, err)
			return
		}

		c.Set(ContextKeyIdentity, identity)
		c.Next()
	}
}

// RequireAdminPage is the browser variant of RequireAdmin. Requests with
// no credential at all are redirected to loginPath instead of receiving
// a JSON 401, so an anonymous visit to the moderation page lands on the
// login form. A credential that is present but rejected still gets the
// error envelope, making an expired or tampered cookie visible.
func RequireAdminPage(authn ports.Authenticator, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		credential := ExtractCredential(c)
		if credential == "" {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()

			return
		}

		identity, err := authn.Authenticate(c.Request.Context(), credential)
		if err != nil {
			dto.AbortWithError(c, err)
			return
		}

		c.Set(ContextKeyIdentity, identity)
		c.Next()
	}
}
