package models

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Error codes used across the application.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeNotFound     = "NOT_FOUND"
	CodeInternal     = "INTERNAL_ERROR"
)

// ErrorItem is a single error message in an API error response.
type ErrorItem struct {
	Msg string `json:"msg"`
}

// ErrorResponse is the wire shape for validation/auth/not-found failures.
type ErrorResponse struct {
	Errors []ErrorItem `json:"errors"`
}

// AppError represents a custom application error. Messages holds one entry
// per violated field for validation errors, otherwise a single message.
type AppError struct {
	Code     string
	Messages []string
	Err      error
}

func (e *AppError) Error() string {
	if len(e.Messages) == 0 && e.Err != nil {
		return e.Err.Error()
	}
	return strings.Join(e.Messages, "; ")
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError returns a 400-class error with per-field messages.
func NewValidationError(messages ...string) *AppError {
	return &AppError{Code: CodeValidation, Messages: messages}
}

// NewUnauthorizedError returns a 401-class error.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Messages: []string{message}}
}

// NewNotFoundError returns a missing-resource error. The HTTP status it maps
// to depends on the endpoint (400 for profiles, 404 for posts).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: CodeNotFound, Messages: []string{message}}
}

// NewInternalError wraps an unexpected failure with a component tag. The tag
// is the only detail echoed to clients.
func NewInternalError(component string, err error) *AppError {
	return &AppError{
		Code:     CodeInternal,
		Messages: []string{"Server Error // " + component},
		Err:      err,
	}
}

// RespondWithError writes a standardized error response. Validation, auth and
// not-found failures are structured JSON; internal errors are deliberately a
// generic plain-text body so no store or stack detail ever reaches a client.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	if appErr, ok := err.(*AppError); ok {
		if appErr.Code == CodeInternal {
			return c.Status(fiber.StatusInternalServerError).SendString(appErr.Messages[0])
		}
		items := make([]ErrorItem, 0, len(appErr.Messages))
		for _, msg := range appErr.Messages {
			items = append(items, ErrorItem{Msg: msg})
		}
		return c.Status(status).JSON(ErrorResponse{Errors: items})
	}

	if status >= fiber.StatusInternalServerError {
		return c.Status(status).SendString("Server Error")
	}
	return c.Status(status).JSON(ErrorResponse{Errors: []ErrorItem{{Msg: err.Error()}}})
}
