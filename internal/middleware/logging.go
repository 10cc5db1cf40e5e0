package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jobtrack/jobtrack/pkg/logger"
)

// Logging attaches a request id to the request context and logs one line
// per completed request.
func Logging(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, requestID := logger.EnsureRequestID(c.Request.Context())
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		log.Infof(ctx, "%s %s -> %d (%s)",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
