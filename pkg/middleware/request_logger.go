package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/templatehub/backend/pkg/logger"
	"github.com/templatehub/backend/pkg/metrics"
)

// RequestLogger records method, path, status and duration for every
// request/response pair. It observes the response, it never mutates it.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		dur := time.Since(start)
		status := c.Writer.Status()
		metrics.RequestDuration.WithLabelValues(c.Request.Method, fmt.Sprintf("%d", status)).Observe(dur.Seconds())
		logger.Infof("%s %s -> %d (%s)", c.Request.Method, path, status, dur)
	}
}
