package api

import "github.com/gofiber/fiber/v2"

// ClearAllData removes every cycle and annotation of the current user. The
// account itself stays.
func (handler *Handler) ClearAllData(c *fiber.Ctx) error {
	userID := currentUserID(c)

	deleted, err := handler.cycleService.DeleteAll(c.UserContext(), userID)
	if err != nil {
		return handler.internalError(c, "failed to clear data", err)
	}
	if err := handler.annotations.Clear(c.UserContext(), userID); err != nil {
		return handler.internalError(c, "failed to clear data", err)
	}
	return c.JSON(fiber.Map{"ok": true, "deletedCycles": deleted})
}
