package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cvisionary/internal/shared/metrics"
	"cvisionary/internal/shared/telemetry"
)

// Logging emits a structured log per request and records its latency.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		durationMs := float64(latency.Microseconds()) / 1000.0
		metrics.ObserveRequestDurationMs(durationMs)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		telemetry.Info("request.complete", map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       route,
			"status":      c.Writer.Status(),
			"duration_ms": durationMs,
			"user_id":     c.GetString(userIDKey),
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		})
	}
}
