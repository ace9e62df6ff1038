package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclecal/internal/services"
)

func (handler *Handler) GetCalendar(c *fiber.Ctx) error {
	year, month, err := parseYearMonth(c.Params("year"), c.Params("month"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	cells, err := handler.calendarService.Build(c.UserContext(), year, month, currentUserID(c))
	if err != nil {
		return handler.internalError(c, "failed to build calendar", err)
	}
	return c.JSON(cells)
}

func (handler *Handler) GetDay(c *fiber.Ctx) error {
	date, err := parseDateParam(c, "date")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	userID := currentUserID(c)

	records, err := handler.cycleService.LoadAll(c.UserContext(), userID)
	if err != nil {
		return handler.internalError(c, "failed to load cycles", err)
	}
	annotation, err := handler.annotations.Merge(c.UserContext(), date, userID)
	if err != nil {
		return handler.internalError(c, "failed to load day", err)
	}

	windows := services.PredictLatest(records, handler.horizonCycles)
	return c.JSON(dayResponse{
		Date:       services.FormatISODate(date),
		DayType:    handler.classifier.Classify(date, windows),
		Annotation: annotation,
	})
}
