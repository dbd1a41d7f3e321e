package utils

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse sends the standard API error body: {"error": "<message>"}.
// Internal detail never reaches the client; callers log it before calling this.
func ErrorResponse(c *fiber.Ctx, message string, status int) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// UnauthorizedResponse sends the fixed body for unauthenticated requests
func UnauthorizedResponse(c *fiber.Ctx) error {
	return ErrorResponse(c, "Unauthorized", fiber.StatusUnauthorized)
}

// ForbiddenResponse sends the fixed body for authenticated but disallowed requests
func ForbiddenResponse(c *fiber.Ctx) error {
	return ErrorResponse(c, "Forbidden", fiber.StatusForbidden)
}

// NotFoundResponse sends a 404 with the given message
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, message, fiber.StatusNotFound)
}

// InternalErrorResponse logs the underlying error server-side and returns a
// generic 500 body to the caller.
func InternalErrorResponse(c *fiber.Ctx, op string, err error) error {
	log.Printf("%s: %v", op, err)
	return ErrorResponse(c, "Internal server error", fiber.StatusInternalServerError)
}

// SuccessResponse sends a JSON body with the given status
func SuccessResponse(c *fiber.Ctx, data interface{}, status int) error {
	return c.Status(status).JSON(data)
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Error string `json:"error"`
}
