package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclecal/internal/services"
)

const maxHorizonCycles = 24

func (handler *Handler) ListCycles(c *fiber.Ctx) error {
	records, err := handler.cycleService.LoadAll(c.UserContext(), currentUserID(c))
	if err != nil {
		return handler.internalError(c, "failed to load cycles", err)
	}

	response := make([]cycleResponse, 0, len(records))
	for _, record := range records {
		response = append(response, newCycleResponse(record))
	}
	return c.JSON(response)
}

func (handler *Handler) CreateCycle(c *fiber.Ctx) error {
	input := cycleInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	cycle := services.CycleInput{
		CycleLengthDays:    input.CycleLength,
		PeriodDurationDays: input.PeriodDuration,
	}
	if raw := strings.TrimSpace(input.StartDate); raw != "" {
		startDate, err := services.ParseISODate(raw)
		if err != nil {
			return validationError(c, &services.ValidationError{Field: "startDate", Reason: "must be YYYY-MM-DD"})
		}
		cycle.StartDate = startDate
	}

	record, err := handler.cycleService.Create(c.UserContext(), currentUserID(c), cycle)
	var invalid *services.ValidationError
	switch {
	case errors.As(err, &invalid):
		return validationError(c, invalid)
	case err != nil:
		return handler.internalError(c, "failed to save cycle", err)
	}
	return c.Status(fiber.StatusCreated).JSON(newCycleResponse(record))
}

func (handler *Handler) DeleteCyclesForMonth(c *fiber.Ctx) error {
	year, month, err := parseYearMonth(c.Query("year"), c.Query("month"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	deleted, err := handler.cycleService.DeleteForMonth(c.UserContext(), currentUserID(c), year, month)
	if err != nil {
		return handler.internalError(c, "failed to delete cycles", err)
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}

func (handler *Handler) DeleteCycle(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid cycle id")
	}

	err = handler.cycleService.DeleteByID(c.UserContext(), currentUserID(c), uint(id))
	switch {
	case errors.Is(err, services.ErrCycleNotFound):
		return apiError(c, fiber.StatusNotFound, "cycle not found")
	case err != nil:
		return handler.internalError(c, "failed to delete cycle", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) DeleteAllCycles(c *fiber.Ctx) error {
	deleted, err := handler.cycleService.DeleteAll(c.UserContext(), currentUserID(c))
	if err != nil {
		return handler.internalError(c, "failed to delete cycles", err)
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}

func (handler *Handler) GetPredictions(c *fiber.Ctx) error {
	horizon := handler.horizonCycles
	if raw := strings.TrimSpace(c.Query("horizon")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxHorizonCycles {
			return apiError(c, fiber.StatusBadRequest, "invalid horizon")
		}
		horizon = parsed
	}

	records, err := handler.cycleService.LoadAll(c.UserContext(), currentUserID(c))
	if err != nil {
		return handler.internalError(c, "failed to load cycles", err)
	}

	windows := services.PredictLatest(records, horizon)
	response := make([]predictionResponse, 0, len(windows))
	for _, window := range windows {
		response = append(response, newPredictionResponse(window))
	}
	return c.JSON(response)
}
