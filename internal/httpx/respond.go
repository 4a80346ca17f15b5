package httpx

import (
	"time"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/bookloft/catalog-api/pkg/errors"
)

// SuccessEnvelope is the body of every successful business response.
type SuccessEnvelope struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Timestamp string      `json:"timestamp"`
}

// ErrorEnvelope is the body of every failed business response.
type ErrorEnvelope struct {
	Error      bool   `json:"error"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Timestamp  string `json:"timestamp"`
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Success writes a success envelope with the given status code.
func Success(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(SuccessEnvelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: now(),
	})
}

// OK writes a 200 success envelope.
func OK(c *fiber.Ctx, message string, data interface{}) error {
	return Success(c, fiber.StatusOK, message, data)
}

// Error resolves err to an HTTP status and writes an error envelope.
// Errors without an AppError in their chain surface as a generic 500
// so internal detail never leaks to the client.
func Error(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Something went wrong!"

	if appErr, ok := apperrors.AsAppError(err); ok {
		status = appErr.HTTPStatus()
		message = appErr.Message
	}

	return c.Status(status).JSON(ErrorEnvelope{
		Error:      true,
		Message:    message,
		StatusCode: status,
		Timestamp:  now(),
	})
}

// ErrorMessage writes an error envelope with an explicit status and message.
func ErrorMessage(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(ErrorEnvelope{
		Error:      true,
		Message:    message,
		StatusCode: status,
		Timestamp:  now(),
	})
}
