package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"steel-procurement/internal/logger"
)

// Logger is a middleware that logs the request details
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}

		evt := logger.Log.Info()
		if c.Writer.Status() >= 500 {
			evt = logger.Log.Error()
		} else if c.Writer.Status() >= 400 {
			evt = logger.Log.Warn()
		}
		evt.
			Str("method", c.Request.Method).
			Str("path", path).
			Str("ip", c.ClientIP()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request processed")
	}
}
