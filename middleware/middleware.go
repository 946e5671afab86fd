package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"app/logger"
)

// RequestLogger logs every request with method, path, status and duration.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		started := time.Now()
		err := c.Next()
		log.Info("request",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"took", time.Since(started),
		)
		return err
	}
}
