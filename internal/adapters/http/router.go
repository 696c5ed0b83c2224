package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mortalnow/dan-s-bullshit/internal/adapters/http/handlers"
	"github.com/mortalnow/dan-s-bullshit/internal/adapters/http/middleware"
	"github.com/mortalnow/dan-s-bullshit/internal/platform/config"
	"github.com/mortalnow/dan-s-bullshit/internal/platform/telemetry"
	"github.com/mortalnow/dan-s-bullshit/internal/ports"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// AppConfig contains application configuration.
	AppConfig *config.AppConfig

	// Authenticator verifies admin credentials. Required when
	// AdminHandler or WebHandler is set.
	Authenticator ports.Authenticator

	// HealthHandler handles health check endpoints.
	HealthHandler *handlers.HealthHandler

	// QuoteHandler handles the public quote API.
	QuoteHandler *handlers.QuoteHandler

	// AdminHandler handles the moderation API.
	AdminHandler *handlers.AdminHandler

	// WebHandler renders the HTML pages.
	WebHandler *handlers.WebHandler

	// Timeout is the default request timeout for API routes.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Request ID - generate/extract request ID
//  3. Correlation ID - handle distributed tracing correlation
//  4. OpenTelemetry - server spans, then metrics and the trace ID header
//  5. Logging - request logging (skips probes and static assets)
//  6. Timeout - request deadline on the API group
//
// Route groups:
//   - /-/ (internal): health endpoints, no auth
//   - /api/ (public API): quote endpoints
//   - /api/admin/ (moderation API): behind RequireAdmin
//   - / (web): HTML pages, dashboard behind RequireAdminPage
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.Tracing(cfg.AppConfig.Name),
		telemetry.Middleware(),
		middleware.Logging(cfg.Logger),
	)

	// Health endpoints skip auth and the API timeout so probes stay cheap.
	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	api := engine.Group("/api")
	if cfg.Timeout > 0 {
		api.Use(middleware.SimpleTimeout(cfg.Timeout))
	}

	if cfg.QuoteHandler != nil {
		cfg.QuoteHandler.RegisterQuoteRoutes(api)
	}

	if cfg.AdminHandler != nil {
		admin := api.Group("/admin", middleware.RequireAdmin(cfg.Authenticator))
		cfg.AdminHandler.RegisterAdminRoutes(admin)
	}

	if cfg.WebHandler != nil {
		engine.SetHTMLTemplate(pageTemplates())
		engine.StaticFS("/static", staticFiles())
		cfg.WebHandler.RegisterWebRoutes(&engine.RouterGroup)
	}
}

// SetupMinimalRouter sets up a minimal router with just health endpoints.
// Useful for testing or lightweight deployments.
func SetupMinimalRouter(engine *gin.Engine, logger *slog.Logger, healthHandler *handlers.HealthHandler) {
	engine.Use(
		middleware.Recovery(logger),
		middleware.RequestID(),
	)

	if healthHandler != nil {
		healthHandler.RegisterHealthRoutesOnEngine(engine)
	}
}
