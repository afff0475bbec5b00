// internal/interfaces/http/middleware/timeout.go
package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
)

// Timeout aborts requests that outlive the configured deadline with a 408.
// The deadline also lands on the request context, so downstream database
// and Redis calls are cancelled together. Streaming endpoints must be
// excluded by the caller; an open SSE connection cannot carry a deadline.
func Timeout(cfg *config.Config) gin.HandlerFunc {
	deadline := cfg.Server.RequestTimeout
	if deadline <= 0 {
		deadline = 30 * time.Second
	}

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), deadline)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		done := make(chan struct{})
		go func() {
			defer close(done)
			c.Next()
		}()

		select {
		case <-done:
		case <-ctx.Done():
			c.JSON(http.StatusRequestTimeout, gin.H{
				"error": "Request timeout",
			})
			c.Abort()
		}
	}
}
