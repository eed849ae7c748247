package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/vidpulse/vidpulse-go/internal/trending"
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateCategory normalizes and checks the category query parameter.
// Empty means "all". Returns the category and an error message ("" if valid).
func ValidateCategory(raw string) (string, string) {
	category := strings.ToLower(strings.TrimSpace(raw))
	if category == "" {
		return trending.CategoryAll, ""
	}
	if !trending.ValidCategory(category) {
		return "", "category must be one of: " + strings.Join(append(trending.Categories(), trending.CategoryAll), ", ")
	}
	return category, ""
}

// ValidatePeriod normalizes and checks the period query parameter.
// Empty means "week". Returns the period and an error message ("" if valid).
func ValidatePeriod(raw string) (string, string) {
	period := strings.ToLower(strings.TrimSpace(raw))
	if period == "" {
		return trending.PeriodWeek, ""
	}
	if !trending.ValidPeriod(period) {
		return "", "period must be one of: today, week, month, all"
	}
	return period, ""
}

// ValidateLimit parses the limit query parameter and clamps it to [1,100].
// Empty or unparseable input falls back to the default of 50.
func ValidateLimit(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return trending.DefaultLimit
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return trending.DefaultLimit
	}
	if n < 1 {
		return 1
	}
	if n > trending.MaxLimit {
		return trending.MaxLimit
	}
	return n
}
