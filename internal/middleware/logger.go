package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const contextKeyRequestID = "request_id"

// RequestID injects an X-Request-ID header into the request and response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(contextKeyRequestID, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// Logger logs each request with method, path, query, status and latency.
// The query string is part of the log line because view/mode/format
// parameters decide which rendering of sensitive values is served.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}
		log.Printf("[%s] %s %s %d %s",
			requestIDFrom(c),
			c.Request.Method,
			path,
			c.Writer.Status(),
			latency,
		)
	}
}

// LogError logs an error tagged with the request ID, so a 5xx in the access
// log can be matched to its cause.
func LogError(c *gin.Context, err error) {
	log.Printf("[%s] internal error: %v", requestIDFrom(c), err)
}

func requestIDFrom(c *gin.Context) string {
	if id, ok := c.Get(contextKeyRequestID); ok {
		return id.(string)
	}
	return "-"
}

// Recovery recovers from panics and returns a 500 error.
func Recovery() gin.HandlerFunc {
	return gin.Recovery()
}
