package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags every request with an id, reusing the caller's when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Writer.Header().Set(requestIDHeader, reqID)
		c.Set("requestID", reqID)
		c.Next()
	}
}

// RequestLogger logs one structured line per request.
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		entry := logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"remote_ip":  c.ClientIP(),
			"user_agent": c.Request.UserAgent(),
		})
		if reqID := c.Writer.Header().Get(requestIDHeader); reqID != "" {
			entry = entry.WithField("request_id", reqID)
		}

		c.Next()

		entry.WithFields(logrus.Fields{
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(startTime).Milliseconds(),
		}).Info("Request handled")
	}
}
