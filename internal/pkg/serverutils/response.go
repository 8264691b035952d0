package serverutils

import "github.com/gofiber/fiber/v2"

func SuccessResponse(message string, data interface{}) fiber.Map {
	return fiber.Map{
		"message": message,
		"data":    data,
	}
}

func ErrorResponse(message string) fiber.Map {
	return fiber.Map{
		"message": message,
	}
}
