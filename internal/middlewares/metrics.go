package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"

	"h2grid/internal/metrics"
)

// Metrics records every request under its route pattern, not the raw path, so
// ids do not blow up label cardinality.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		done := m.RequestStarted()
		defer done()

		start := time.Now()
		c.Next()
		m.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
