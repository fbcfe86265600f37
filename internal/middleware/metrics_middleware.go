package middleware

import (
	"time"

	"go-leave/internal/obs"

	"github.com/gin-gonic/gin"
)

// Metrics records request count and latency by route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		obs.HTTPStarted()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		obs.HTTPFinished(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
