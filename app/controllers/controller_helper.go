package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/feepilot/feepilot/internal/pkg/billing"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Every billing endpoint answers with the same envelope:
// {success, data?, message?, error?}.

func respondData(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{"success": true, "data": data})
}

func respondMessage(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": true, "message": message})
}

// respondError is the single translator from internal errors to HTTP status
// codes. Store errors arrive here untouched; the message is passed through.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	var validationErr *billing.ValidationError
	var notFoundErr *billing.NotFoundError
	var ownershipErr *billing.OwnershipError
	var fieldErrs validator.ValidationErrors

	switch {
	case errors.As(err, &validationErr), errors.As(err, &fieldErrs):
		status = fiber.StatusBadRequest
	case errors.As(err, &notFoundErr), errors.Is(err, gorm.ErrRecordNotFound):
		status = fiber.StatusNotFound
	case errors.As(err, &ownershipErr):
		status = fiber.StatusForbidden
	}

	return c.Status(status).JSON(fiber.Map{"success": false, "error": err.Error()})
}

func respondBadRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": message})
}

// parseDate accepts plain dates and RFC3339 timestamps.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func parseDatePtr(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseDate(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// paginationParams reads limit/offset query parameters with sane bounds.
func paginationParams(c *fiber.Ctx) (offset, limit int) {
	offset, _ = strconv.Atoi(c.Query("offset", "0"))
	limit, _ = strconv.Atoi(c.Query("limit", "50"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	return offset, limit
}
