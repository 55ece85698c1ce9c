package middleware

import (
	"time"

	"github.com/alessok/devops-proyecto-final/internal/core/port"
	"github.com/gin-gonic/gin"
)

// CollectMetrics records a count and a latency observation for every request,
// labeled by method, route template and status.
func CollectMetrics(sink port.MetricsPort) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		ctx := c.Request.Context()
		status := c.Writer.Status()
		sink.IncRequest(ctx, c.Request.Method, route, status)
		sink.ObserveRequestDuration(ctx, c.Request.Method, route, status, time.Since(start).Seconds())
	}
}
