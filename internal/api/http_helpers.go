package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclecal/internal/services"
	"go.uber.org/zap"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func validationError(c *fiber.Ctx, err *services.ValidationError) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": err.Error(),
		"field": err.Field,
	})
}

// internalError logs the cause and answers with a generic message.
func (handler *Handler) internalError(c *fiber.Ctx, message string, err error) error {
	handler.logger.Error(message,
		zap.String("request_id", requestID(c)),
		zap.String("path", c.Path()),
		zap.Uint("user_id", currentUserID(c)),
		zap.Error(err),
	)
	return apiError(c, fiber.StatusInternalServerError, message)
}

func parseDateParam(c *fiber.Ctx, name string) (time.Time, error) {
	parsed, err := services.ParseISODate(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s", name)
	}
	return parsed, nil
}

func parseYearMonth(rawYear string, rawMonth string) (int, time.Month, error) {
	year, err := strconv.Atoi(strings.TrimSpace(rawYear))
	if err != nil || year < 1 || year > 9999 {
		return 0, 0, errors.New("invalid year")
	}
	month, err := strconv.Atoi(strings.TrimSpace(rawMonth))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, errors.New("invalid month")
	}
	return year, time.Month(month), nil
}
