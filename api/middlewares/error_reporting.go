package middlewares

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
)

// ErrorReportingMiddleware forwards panics to Sentry and re-panics so gin's
// recovery still answers 500. Without sentry.Init the hub has no client and
// reporting is a no-op.
func ErrorReportingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		hub := sentry.CurrentHub().Clone()
		hub.Scope().SetRequest(c.Request)
		defer func() {
			if err := recover(); err != nil {
				hub.RecoverWithContext(c.Request.Context(), err)
				hub.Flush(2 * time.Second)
				panic(err)
			}
		}()
		c.Next()
	}
}
