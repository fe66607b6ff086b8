package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rxtech-lab/launchpad-drafts/internal/services"
	"go.uber.org/zap"
)

// statusForError maps store errors onto HTTP status codes.
func statusForError(err error) int {
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrInvalidRecord), errors.Is(err, services.ErrEncodingFailure):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrInvalidTransition):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrQuotaExceeded):
		return fiber.StatusInsufficientStorage
	case errors.Is(err, services.ErrStorageUnavailable):
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := statusForError(err)
		if status >= fiber.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err))
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
}
