package middleware

import (
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/farepilot/farepilot/pkg/errors"
	"github.com/gin-gonic/gin"
)

// SentryMiddleware integrates Sentry panic capture into the gin chain.
func SentryMiddleware() gin.HandlerFunc {
	return sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         2 * time.Second,
	})
}

// ErrorHandler reports request errors to Sentry. It should be placed after
// other middleware in the chain.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		errors.AddBreadcrumbForRequest(c.Request.Method, c.Request.URL.Path, statusCode, duration)

		for _, ginErr := range c.Errors {
			if errors.ShouldReportError(ginErr.Err, statusCode) {
				errors.CaptureError(ginErr.Err, map[string]string{
					"path":           c.Request.URL.Path,
					"method":         c.Request.Method,
					"correlation_id": GetCorrelationID(c),
				})
			}
		}
	}
}
