package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags each request with an id, reusing one supplied by the client.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("requestID", requestID)
		c.Header(requestIDHeader, requestID)
		c.Next()
	}
}

// GetRequestID returns the id assigned by RequestID.
func GetRequestID(c *gin.Context) string {
	return c.GetString("requestID")
}

// Logger logs request details using structured logging
func Logger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", GetRequestID(c)),
			slog.String("remote_addr", c.ClientIP()),
		}
		if uid, ok := GetUserID(c); ok {
			attrs = append(attrs, slog.Uint64("user_id", uint64(uid)))
		}

		switch {
		case c.Writer.Status() >= 500:
			logger.Error("request", attrs...)
		case len(c.Errors) > 0:
			logger.Warn("request", append(attrs, slog.String("errors", c.Errors.String()))...)
		default:
			logger.Info("request", attrs...)
		}
	}
}
