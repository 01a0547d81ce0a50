package middleware

import (
	"errors"

	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// NotFound terminates the chain for unmatched routes.
func NotFound(c *fiber.Ctx) error {
	return utils.NotFound("Not Found - " + c.OriginalURL())
}

// ErrorHandler renders every error returned by a handler as {message, stack?}.
// Stacks are only attached outside production.
func ErrorHandler(production bool, logger *utils.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := utils.StatusOf(err)
		body := utils.ErrorResponse{Message: errorMessage(err, status)}
		if !production {
			body.Stack = utils.StackOf(err)
		}

		if status >= fiber.StatusInternalServerError {
			logger.Error("request failed", "path", c.Path(), "status", status, "error", err)
		}
		return c.Status(status).JSON(body)
	}
}

func errorMessage(err error, status int) string {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		return appErr.Error()
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Message
	}
	if status >= fiber.StatusInternalServerError {
		return "Server Error"
	}
	return err.Error()
}
