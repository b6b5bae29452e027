package handlers

import (
	"blogify/errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// NewErrorHandler translates AppError results into HTTP responses. Anything
// else is masked as a generic 500.
func NewErrorHandler(logger *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		if e, ok := err.(*errors.AppError); ok {
			code = e.Code
			message = e.Message
		}

		entry := logger.WithFields(logrus.Fields{
			"request_id": c.Get("X-Request-ID"),
			"path":       c.Path(),
			"method":     c.Method(),
			"status":     code,
		})
		if code >= fiber.StatusInternalServerError {
			entry.WithError(err).Error("Request error")
		} else {
			entry.WithError(err).Warn("Request rejected")
		}

		return c.Status(code).JSON(fiber.Map{
			"error": message,
		})
	}
}
