package api

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclecal/internal/services"
)

func (handler *Handler) ExportSummary(c *fiber.Ctx) error {
	span, message := parseExportRange(c)
	if message != "" {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	summary, err := handler.exportService.BuildSummary(c.UserContext(), currentUserID(c), span)
	if err != nil {
		return handler.internalError(c, "failed to build export", err)
	}
	return c.JSON(summary)
}

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	span, message := parseExportRange(c)
	if message != "" {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	entries, err := handler.exportService.BuildEntries(c.UserContext(), currentUserID(c), span)
	if err != nil {
		return handler.internalError(c, "failed to build export", err)
	}

	setExportAttachmentHeaders(c, fiber.MIMEApplicationJSON, handler.exportFilename("json"))
	return c.JSON(entries)
}

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	span, message := parseExportRange(c)
	if message != "" {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	entries, err := handler.exportService.BuildEntries(c.UserContext(), currentUserID(c), span)
	if err != nil {
		return handler.internalError(c, "failed to build export", err)
	}

	var output bytes.Buffer
	writer := csv.NewWriter(&output)
	if err := writer.Write(services.ExportCSVHeaders); err != nil {
		return handler.internalError(c, "failed to build export", err)
	}
	for _, entry := range entries {
		if err := writer.Write(entry.Columns()); err != nil {
			return handler.internalError(c, "failed to build export", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return handler.internalError(c, "failed to build export", err)
	}

	setExportAttachmentHeaders(c, "text/csv", handler.exportFilename("csv"))
	return c.Send(output.Bytes())
}

func parseExportRange(c *fiber.Ctx) (services.ExportRange, string) {
	span, err := services.ParseExportRange(c.Query("from"), c.Query("to"))
	switch {
	case errors.Is(err, services.ErrExportFromDateInvalid):
		return services.ExportRange{}, "invalid from date"
	case errors.Is(err, services.ErrExportToDateInvalid):
		return services.ExportRange{}, "invalid to date"
	case err != nil:
		return services.ExportRange{}, "invalid range"
	}
	return span, ""
}

func (handler *Handler) exportFilename(extension string) string {
	today := services.DateAtLocation(handler.now(), handler.location)
	return fmt.Sprintf("cyclecal-export-%s.%s", services.FormatISODate(today), extension)
}

func setExportAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
}
