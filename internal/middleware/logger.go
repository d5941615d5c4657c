package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"tailorshop/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger attaches a request-scoped logger and logs one line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ctx, _ := logger.ContextWithLogger(c.Request.Context(), c.GetHeader(requestIDHeader))
		c.Request = c.Request.WithContext(ctx)
		c.Header(requestIDHeader, logger.RequestIDFromContext(ctx))

		c.Next()

		status := c.Writer.Status()
		entry := logger.FromContext(c.Request.Context()).WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  status,
			"latency": time.Since(start).String(),
			"user_id": c.GetInt64("user_id"),
			"role":    c.GetString("role"),
		})
		switch {
		case status >= http.StatusInternalServerError:
			entry.WithField("errors", c.Errors.String()).Error("request")
		case status >= http.StatusBadRequest:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}

// Recovery turns panics into a 500 envelope and logs the stack.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if recovered := recover(); recovered != nil {
				logger.FromContext(c.Request.Context()).WithFields(logrus.Fields{
					"panic": fmt.Sprint(recovered),
					"stack": string(debug.Stack()),
					"path":  c.Request.URL.Path,
				}).Error("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":   "internal error",
					"message": fmt.Sprint(recovered),
				})
			}
		}()
		c.Next()
	}
}
