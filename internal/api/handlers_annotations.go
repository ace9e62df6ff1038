package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclecal/internal/services"
)

func (handler *Handler) GetAnnotation(c *fiber.Ctx) error {
	category, err := services.ParseCategory(c.Params("category"))
	if err != nil {
		return apiError(c, fiber.StatusNotFound, "unknown category")
	}
	date, err := parseDateParam(c, "date")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	value, found, err := handler.annotations.Read(c.UserContext(), category, currentUserID(c), date)
	if err != nil {
		return handler.internalError(c, "failed to load annotation", err)
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "annotation not found")
	}
	return c.JSON(annotationResponse{Category: category, Date: services.FormatISODate(date), Value: value})
}

// PutAnnotation replaces the entry for one category and date. A body that
// decodes to an empty value removes the entry.
func (handler *Handler) PutAnnotation(c *fiber.Ctx) error {
	category, err := services.ParseCategory(c.Params("category"))
	if err != nil {
		return apiError(c, fiber.StatusNotFound, "unknown category")
	}
	date, err := parseDateParam(c, "date")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	value, err := services.DecodeValue(category, c.Body())
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid annotation payload")
	}

	userID := currentUserID(c)
	err = handler.annotations.Write(c.UserContext(), category, userID, date, value)
	switch {
	case errors.Is(err, services.ErrReadOnlyCategory):
		return apiError(c, fiber.StatusMethodNotAllowed, "annotation category is read-only")
	case errors.Is(err, services.ErrInvalidAnnotation):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case err != nil:
		return handler.internalError(c, "failed to save annotation", err)
	}

	if value.IsEmpty() {
		return c.SendStatus(fiber.StatusNoContent)
	}
	stored, found, err := handler.annotations.Read(c.UserContext(), category, userID, date)
	if err != nil {
		return handler.internalError(c, "failed to load annotation", err)
	}
	if !found {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(annotationResponse{Category: category, Date: services.FormatISODate(date), Value: stored})
}
