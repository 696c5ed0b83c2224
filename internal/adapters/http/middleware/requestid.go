// Package middleware holds the Gin middleware the router assembles around
// the quote handlers: request identity, logging, recovery, auth, body
// limits, and timeouts.
package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/mortalnow/dan-s-bullshit/internal/platform/logging"
)

const (
	// HeaderRequestID carries the per-request ID.
	HeaderRequestID = "X-Request-ID"

	// ContextKeyRequestID is the gin context key the request ID is stored under.
	ContextKeyRequestID = "request_id"
)

// RequestID tags every request with an ID: the X-Request-ID value when the
// caller sent one, a fresh UUID otherwise. The ID lands in the gin and
// request contexts and on the response headers, and the context logger
// picks it up, so a single submission can be followed from access log to
// store call.
func RequestID() gin.HandlerFunc {
	return createIDMiddleware(idMiddlewareConfig{
		headerName:      HeaderRequestID,
		contextKey:      ContextKeyRequestID,
		contextStore:    ContextWithRequestID,
		contextEnricher: logging.WithRequestID,
	})
}

// GetRequestID reads the request ID from the gin context. It is "" before
// the middleware has run.
func GetRequestID(c *gin.Context) string {
	return getIDFromContext(c, ContextKeyRequestID)
}

// MustGetRequestID is GetRequestID with "unknown" standing in when the
// middleware has not run.
func MustGetRequestID(c *gin.Context) string {
	if id := GetRequestID(c); id != "" {
		return id
	}

	return "unknown"
}
