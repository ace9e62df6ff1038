package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	authCookieName      = "cyclecal_auth"
	contextUserIDKey    = "current_user_id"
	contextRequestIDKey = "request_id"
)

func currentUserID(c *fiber.Ctx) uint {
	userID, _ := c.Locals(contextUserIDKey).(uint)
	return userID
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals(contextRequestIDKey).(string)
	return id
}

// RequestLogger tags each request with an id (reusing X-Request-ID when the
// client sent one) and logs it once the handler chain returns.
func (handler *Handler) RequestLogger(c *fiber.Ctx) error {
	id := c.Get(fiber.HeaderXRequestID)
	if id == "" {
		id = uuid.NewString()
	}
	c.Locals(contextRequestIDKey, id)
	c.Set(fiber.HeaderXRequestID, id)

	started := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		status = fiber.StatusInternalServerError
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
		}
	}

	handler.logger.Info("request",
		zap.String("request_id", id),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", status),
		zap.Duration("latency", time.Since(started)),
		zap.Uint("user_id", currentUserID(c)),
	)
	return err
}

func (handler *Handler) errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return apiError(c, fiberErr.Code, fiberErr.Message)
	}
	handler.logger.Error("unhandled error", zap.String("request_id", requestID(c)), zap.Error(err))
	return apiError(c, fiber.StatusInternalServerError, "internal error")
}
