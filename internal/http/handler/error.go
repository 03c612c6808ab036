package handler

import (
	"github.com/gofiber/fiber/v2"

	"retailadmin/internal/http/middleware"
)

// ErrorResponse is the standardized error body.
type ErrorResponse struct {
	RequestID string        `json:"request_id"`
	Error     ErrorEnvelope `json:"error"`
}

// ErrorEnvelope carries a machine-readable code and a safe message.
type ErrorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Title   string `json:"title,omitempty"`
}

func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(ErrorResponse{
		RequestID: requestIDFromCtx(c),
		Error:     ErrorEnvelope{Code: code, Message: message},
	})
}

func writeFieldError(c *fiber.Ctx, status int, code, message, field string) error {
	return c.Status(status).JSON(ErrorResponse{
		RequestID: requestIDFromCtx(c),
		Error:     ErrorEnvelope{Code: code, Message: message, Field: field},
	})
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
