package server

import (
	"strconv"
	"time"

	"devlink/internal/models"

	"github.com/gofiber/fiber/v2"
)

// respondError maps an application error to the right HTTP status and body.
// The optional notFoundStatus overrides the status used for not-found errors:
// profile endpoints report 400 while post endpoints report 404.
func respondError(c *fiber.Ctx, err error, notFoundStatus ...int) error {
	status := fiber.StatusInternalServerError
	if appErr, ok := err.(*models.AppError); ok {
		switch appErr.Code {
		case models.CodeValidation:
			status = fiber.StatusBadRequest
		case models.CodeUnauthorized:
			status = fiber.StatusUnauthorized
		case models.CodeNotFound:
			status = fiber.StatusNotFound
			if len(notFoundStatus) > 0 {
				status = notFoundStatus[0]
			}
		}
	}
	return models.RespondWithError(c, status, err)
}

// parseID reads a numeric route parameter.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(param), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// currentUserID returns the authenticated user's ID set by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// parseDate accepts a bare date or an RFC 3339 timestamp.
func parseDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// parseOptionalDate returns nil for an empty value.
func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseDate(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
