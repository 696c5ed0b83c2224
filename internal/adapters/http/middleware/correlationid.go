package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/mortalnow/dan-s-bullshit/internal/platform/logging"
)

const (
	// HeaderCorrelationID carries the cross-service transaction ID. A
	// request ID names one hop; the correlation ID follows the whole
	// journey, hosted API calls included.
	HeaderCorrelationID = "X-Correlation-ID"

	// ContextKeyCorrelationID is the gin context key the correlation ID is
	// stored under.
	ContextKeyCorrelationID = "correlation_id"
)

// CorrelationID propagates the caller's X-Correlation-ID, or mints a UUID
// when the transaction originates here. The ID then flows through the
// same storage and logging path as the request ID.
func CorrelationID() gin.HandlerFunc {
	return createIDMiddleware(idMiddlewareConfig{
		headerName:      HeaderCorrelationID,
		contextKey:      ContextKeyCorrelationID,
		contextStore:    ContextWithCorrelationID,
		contextEnricher: logging.WithCorrelationID,
	})
}

// GetCorrelationID reads the correlation ID from the gin context. It is ""
// before the middleware has run.
func GetCorrelationID(c *gin.Context) string {
	return getIDFromContext(c, ContextKeyCorrelationID)
}

// MustGetCorrelationID is GetCorrelationID with "unknown" standing in when
// the middleware has not run.
func MustGetCorrelationID(c *gin.Context) string {
	if id := GetCorrelationID(c); id != "" {
		return id
	}

	return "unknown"
}
