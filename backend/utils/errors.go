package utils

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AppError is an error that knows which HTTP status it maps to. Message is
// safe to show to clients; Err is only logged.
type AppError struct {
	Status  int
	Message string
	Details interface{}
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func ErrValidation(message string, details ...interface{}) *AppError {
	e := &AppError{Status: fiber.StatusBadRequest, Message: message}
	if len(details) > 0 {
		e.Details = details[0]
	}
	return e
}

func ErrUnauthorized(message string) *AppError {
	return &AppError{Status: fiber.StatusUnauthorized, Message: message}
}

func ErrNotFound(message string) *AppError {
	return &AppError{Status: fiber.StatusNotFound, Message: message}
}

func ErrConflict(message string) *AppError {
	return &AppError{Status: fiber.StatusConflict, Message: message}
}

// ErrInternal wraps an unexpected failure. message is what the client sees.
func ErrInternal(message string, err error) *AppError {
	return &AppError{Status: fiber.StatusInternalServerError, Message: message, Err: err}
}

// IsNotFound reports whether err means a missing row.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate reports whether err is a unique constraint violation. The
// database is opened with TranslateError so drivers report gorm.ErrDuplicatedKey.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// ErrorHandler turns errors returned by handlers into the JSON envelope.
// Anything that is not an AppError or fiber.Error is logged and answered with
// a generic 500 so internal error text never reaches the client.
func ErrorHandler(log *Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var appErr *AppError
		var fiberErr *fiber.Error

		switch {
		case errors.Is(err, context.DeadlineExceeded):
			return c.Status(fiber.StatusRequestTimeout).JSON(ErrorResponse{
				Success: false,
				Error:   http.StatusText(fiber.StatusRequestTimeout),
				Message: "Request timed out",
			})
		case errors.As(err, &appErr):
			if appErr.Status >= fiber.StatusInternalServerError {
				log.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
			}
			resp := ErrorResponse{
				Success: false,
				Error:   http.StatusText(appErr.Status),
				Message: appErr.Message,
				Details: appErr.Details,
			}
			return c.Status(appErr.Status).JSON(resp)
		case errors.As(err, &fiberErr):
			return c.Status(fiberErr.Code).JSON(ErrorResponse{
				Success: false,
				Error:   http.StatusText(fiberErr.Code),
				Message: fiberErr.Message,
			})
		default:
			log.Error("unhandled error", "method", c.Method(), "path", c.Path(), "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
				Success: false,
				Error:   http.StatusText(fiber.StatusInternalServerError),
				Message: "Internal server error",
			})
		}
	}
}
