package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/linkhive/backend/internal/metrics"
	"github.com/linkhive/backend/pkg/logger"
)

func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		logger.Info("http_request", map[string]interface{}{
			"method":      c.Method(),
			"path":        c.Path(),
			"status":      c.Response().StatusCode(),
			"duration_ms": time.Since(start).Milliseconds(),
			"ip":          c.IP(),
		})

		return err
	}
}

// Metrics records every response's status code on the collector.
func Metrics(collector *metrics.Collector) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		collector.RecordHTTPStatus(c.Response().StatusCode())
		return err
	}
}
