package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors escaping a handler into a JSON
// envelope. *fiber.Error keeps its status code; anything else is a 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			message = fiberErr.Message
		}

		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			code = fiber.StatusBadRequest
			message = validationErr.Error()
		}

		return ctx.Status(code).JSON(fiber.Map{"message": message})
	}
}
