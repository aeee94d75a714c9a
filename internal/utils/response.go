package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sunstate-labs/agentcrm/internal/types"
)

// ErrorResponse sends the uniform error body used by every route
func ErrorResponse(c *fiber.Ctx, message string, status int) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// FromError renders a CustomError with its own status, and anything else as
// an opaque 500 so store failures never leak driver detail to the client.
func FromError(c *fiber.Ctx, err error) error {
	var custom *types.CustomError
	if errors.As(err, &custom) {
		return ErrorResponse(c, custom.Message, custom.Code)
	}
	return ErrorResponse(c, "Internal server error", fiber.StatusInternalServerError)
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Error string `json:"error"`
}

// MessageResponseStruct defines the schema for delete confirmations
type MessageResponseStruct struct {
	Message string `json:"message"`
}
