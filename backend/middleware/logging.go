package middleware

import (
	"time"

	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

func LoggingMiddleware(logger *utils.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		// The error handler has not run yet, so resolve the final status here.
		status := c.Response().StatusCode()
		if err != nil {
			status = utils.StatusOf(err)
		}

		fields := []interface{}{
			"ip", c.IP(),
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", time.Since(start).String(),
			"user_agent", c.Get(fiber.HeaderUserAgent),
		}
		if err != nil {
			fields = append(fields, "error", err.Error())
		}
		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Error("request", fields...)
		case status >= fiber.StatusBadRequest:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}

		return err
	}
}
