package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mortalnow/dan-s-bullshit/internal/adapters/http/middleware"
	"github.com/mortalnow/dan-s-bullshit/internal/app"
	"github.com/mortalnow/dan-s-bullshit/internal/domain"
	"github.com/mortalnow/dan-s-bullshit/internal/ports"
)

const (
	// webLoginPath is where anonymous visitors of admin pages land.
	webLoginPath = "/admin/login"

	// webAdminPath is where a successful login redirects.
	webAdminPath = "/admin"

	// webSubmissionSource tags quotes submitted through the HTML form,
	// as opposed to the JSON API.
	webSubmissionSource = "web_form"

	// dashboardPageSize bounds each moderation column on the dashboard.
	dashboardPageSize = 20
)

// WebHandler renders the HTML pages: the public front page, the
// submission form, and the admin dashboard with its login flow.
type WebHandler struct {
	quotes     *app.QuoteService
	moderation *app.ModerationService
	authn      ports.Authenticator
	sessions   ports.SessionIssuer
	sessionTTL time.Duration
}

// WebHandlerConfig contains dependencies for the web handler.
// Sessions is nil when the service authenticates bearer tokens instead
// of issuing its own; the login page then accepts a pasted token.
type WebHandlerConfig struct {
	Quotes     *app.QuoteService
	Moderation *app.ModerationService
	Authn      ports.Authenticator
	Sessions   ports.SessionIssuer
	SessionTTL time.Duration
}

// NewWebHandler creates a new web handler.
func NewWebHandler(cfg WebHandlerConfig) *WebHandler {
	return &WebHandler{
		quotes:     cfg.Quotes,
		moderation: cfg.Moderation,
		authn:      cfg.Authn,
		sessions:   cfg.Sessions,
		sessionTTL: cfg.SessionTTL,
	}
}

// passwordMode reports whether the service issues its own session
// tokens from a password, as opposed to accepting external bearer
// tokens.
func (h *WebHandler) passwordMode() bool {
	return h.sessions != nil
}

// Index renders the front page: a featured random quote next to the
// most recent one. An empty approved set renders the empty state.
func (h *WebHandler) Index(c *gin.Context) {
	random, latest, err := h.quotes.FrontPage(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Random": random,
		"Latest": latest,
	})
}

// RandomRedirect sends /random visitors to the front page, which
// features a fresh random quote on every load.
func (h *WebHandler) RandomRedirect(c *gin.Context) {
	c.Redirect(http.StatusFound, "/")
}

// SubmitForm renders the quote submission form.
func (h *WebHandler) SubmitForm(c *gin.Context) {
	c.HTML(http.StatusOK, "submit.html", gin.H{})
}

// Submit accepts the submission form and queues the quote for
// moderation. Failures re-render the form with the entered values so
// nothing typed is lost.
func (h *WebHandler) Submit(c *gin.Context) {
	content := c.PostForm("content")
	submittedBy := c.PostForm("submitted_by")

	quote, err := h.quotes.Submit(c.Request.Context(), content, webSubmissionSource, submittedBy)
	if err != nil {
		status, message := submitFailure(err)
		c.HTML(status, "submit.html", gin.H{
			"Error":       message,
			"Content":     content,
			"SubmittedBy": submittedBy,
		})

		return
	}

	c.HTML(http.StatusCreated, "submit_success.html", gin.H{
		"Quote": quote,
	})
}

// Dashboard renders the moderation dashboard. The route carries
// middleware.RequireAdminPage, so an identity is always present here.
func (h *WebHandler) Dashboard(c *gin.Context) {
	overview, err := h.moderation.Overview(c.Request.Context(), dashboardPageSize)
	if err != nil {
		h.renderError(c, err)
		return
	}

	var moderator string
	if identity := middleware.GetIdentity(c); identity != nil {
		moderator = identity.Verifier()
	}

	c.HTML(http.StatusOK, "admin.html", gin.H{
		"Pending":   overview.Pending.Quotes,
		"Approved":  overview.Approved.Quotes,
		"Rejected":  overview.Rejected.Quotes,
		"Moderator": moderator,
	})
}

// LoginForm renders the admin login page.
func (h *WebHandler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "admin_login.html", gin.H{
		"PasswordMode": h.passwordMode(),
	})
}

// Login handles the login form. In password mode it exchanges the
// admin password for a session token; in token mode it verifies the
// pasted bearer token. Either way the credential only becomes a cookie
// after it has been accepted.
func (h *WebHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		token string
		err   error
	)

	if h.passwordMode() {
		token, err = h.sessions.Login(ctx, c.PostForm("password"))
	} else {
		token = strings.TrimSpace(c.PostForm("token"))
		_, err = h.authn.Authenticate(ctx, token)
	}

	if err != nil {
		status := http.StatusUnauthorized
		if domain.IsUnavailable(err) {
			status = http.StatusServiceUnavailable
		}

		c.HTML(status, "admin_login.html", gin.H{
			"PasswordMode": h.passwordMode(),
			"Error":        loginFailure(err),
		})

		return
	}

	h.setSessionCookie(c, token, int(h.sessionTTL.Seconds()))
	c.Redirect(http.StatusFound, webAdminPath)
}

// Logout clears the session cookie and returns to the login page.
func (h *WebHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	c.Redirect(http.StatusFound, webLoginPath)
}

// RegisterWebRoutes registers the HTML routes on the given router group.
// Only the dashboard itself sits behind page auth; the login pair must
// stay reachable or nobody could ever log in.
func (h *WebHandler) RegisterWebRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.Index)
	rg.GET("/random", h.RandomRedirect)
	rg.GET("/submit", h.SubmitForm)
	rg.POST("/submit", h.Submit)

	rg.GET(webAdminPath, middleware.RequireAdminPage(h.authn, webLoginPath), h.Dashboard)
	rg.GET(webLoginPath, h.LoginForm)
	rg.POST(webLoginPath, h.Login)
	rg.POST("/admin/logout", h.Logout)
}

// setSessionCookie writes the admin session cookie. HttpOnly keeps it
// away from page scripts; Lax lets the post-login redirect carry it.
func (h *WebHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.CookieAdminToken, token, maxAge, "/", "", false, true)
}

// renderError renders the error page for failures that have no more
// specific page to return to.
func (h *WebHandler) renderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Something went wrong. Try again later."

	if domain.IsUnavailable(err) {
		status = http.StatusServiceUnavailable
		message = "The quote store is unavailable right now. Try again in a moment."
	}

	c.HTML(status, "error.html", gin.H{
		"Error": message,
	})
}

// submitFailure maps a submission error to a form status and a message
// fit for humans.
func submitFailure(err error) (int, string) {
	switch {
	case domain.IsValidation(err):
		return http.StatusBadRequest, "The quote needs some content."
	case domain.IsDuplicateContent(err):
		return http.StatusConflict, "That one has already been submitted."
	case domain.IsUnavailable(err):
		return http.StatusServiceUnavailable, "The quote store is unavailable right now. Try again in a moment."
	default:
		return http.StatusInternalServerError, "Something went wrong. Try again later."
	}
}

// loginFailure maps an authentication error to a login page message.
func loginFailure(err error) string {
	switch {
	case domain.IsUnavailable(err):
		return "Could not verify the credential right now. Try again in a moment."
	case domain.IsForbidden(err):
		return "That account is not allowed to moderate."
	default:
		return "That did not work. Check the credential and try again."
	}
}
