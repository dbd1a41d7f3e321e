package handlers

import (
	"errors"
	"log"

	"github.com/cardkeep/cardkeep-api/internal/types"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler converts any uncaught failure into the standard JSON error
// body, never leaking internal detail to the client. Router misses flow
// through here too, so unknown paths get the fixed 404 body and wrong-method
// requests keep their native 405.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	var customErr *types.CustomError
	if errors.As(err, &customErr) {
		code = customErr.Code
		message = customErr.Message
	}

	switch code {
	case fiber.StatusNotFound:
		message = "Resource not found"
	case fiber.StatusInternalServerError:
		log.Printf("Unhandled error on %s: %v", c.OriginalURL(), err)
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}
