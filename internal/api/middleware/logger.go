package middleware

import (
	"time"

	"smart-meter-exploration/internal/monitoring"

	"github.com/gin-gonic/gin"
)

// Logger logs one line per request through the shared logger
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		monitoring.Logf("[api] %s %s %d %s", c.Request.Method, c.Request.URL.RequestURI(), c.Writer.Status(),
			time.Since(start).Round(time.Microsecond))
	}
}
