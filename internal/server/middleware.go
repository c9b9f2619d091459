// internal/server/middleware.go
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"credit-scoring/internal/common/errors"
	"credit-scoring/internal/common/metrics"
	"credit-scoring/internal/ratelimit"
)

const requestIDKey = "requestId"

// CORSMiddleware sets permissive cross-origin headers on every response and
// answers preflight requests with a bodiless 204. The intake form is served
// from a different origin, so the browser preflights every POST.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RequestIDMiddleware assigns each request a uuid, honoring one supplied by
// the caller.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

// RateLimitMiddleware rejects over-limit clients with the structured error
// body. Keyed by client IP.
func RateLimitMiddleware(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.Request.Context(), c.ClientIP()) {
			stdErr := errors.NewRateLimitedError("request rate exceeded, retry later")
			metrics.PredictionErrors.WithLabelValues(string(stdErr.Code)).Inc()
			c.AbortWithStatusJSON(stdErr.HTTPStatus(), stdErr.ToAPIError())
			return
		}
		c.Next()
	}
}

func requestIDFrom(c *gin.Context) string {
	if v, ok := c.Get(requestIDKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
