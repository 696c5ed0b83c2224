package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// SimpleTimeout returns middleware that sets a deadline on the request
// context. Handlers and the store adapters observe ctx.Done() and surface
// the cancellation as an error, so no separate watchdog goroutine races
// gin's context. The deadline propagates through every downstream call,
// including the cloud store client.
func SimpleTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
