package middleware

import (
	"strconv"
	"time"

	"halo/utils"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records request latency labelled by the matched route.
func MetricsMiddleware(m *utils.HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}
