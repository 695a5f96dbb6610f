package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"userextra/internal/http/middleware"
	"userextra/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: middleware.RequestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError maps service sentinel errors onto HTTP responses.
func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "user extra not found")
	case errors.Is(err, service.ErrIDExists):
		return writeError(c, fiber.StatusBadRequest, "ID_EXISTS", "a new user extra cannot already have an id")
	case errors.Is(err, service.ErrIDNull):
		return writeError(c, fiber.StatusBadRequest, "ID_NULL", "invalid id")
	case errors.Is(err, service.ErrIDInvalid):
		return writeError(c, fiber.StatusBadRequest, "ID_INVALID", "invalid id")
	case errors.Is(err, service.ErrUserTaken):
		return writeError(c, fiber.StatusBadRequest, "USER_TAKEN", "user already has a user extra")
	case errors.Is(err, service.ErrInvalidSide):
		return writeError(c, fiber.StatusBadRequest, "INVALID_SIDE", "image side must be front or back")
	case errors.Is(err, service.ErrImageMissing):
		return writeError(c, fiber.StatusNotFound, "IMAGE_NOT_FOUND", "image not found")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
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
		case fiber.StatusUnsupportedMediaType:
			return writeError(c, status, "UNSUPPORTED_MEDIA_TYPE", "unsupported media type")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
