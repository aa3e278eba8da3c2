package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	fiberutils "github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sirius-edu-api/internal/middleware"
	"github.com/noah-isme/sirius-edu-api/internal/service"
	"github.com/noah-isme/sirius-edu-api/internal/utils"
	"github.com/noah-isme/sirius-edu-api/internal/validation"
)

// RedirectPlanning tells clients to send the user back to the planning tab.
const RedirectPlanning = "planning"

// param returns a route parameter that stays valid after the handler returns.
// Fiber params alias the request buffer, and ids end up as store keys.
func param(c *fiber.Ctx, name string) string {
	return fiberutils.CopyString(c.Params(name))
}

func actorFromContext(c *fiber.Ctx) service.Actor {
	actor := service.Actor{}
	if v, ok := c.Locals(middleware.LocalUserID).(string); ok {
		actor.ID = strings.TrimSpace(v)
	}
	if v, ok := c.Locals(middleware.LocalUserName).(string); ok {
		actor.Name = v
	}
	if v, ok := c.Locals(middleware.LocalUserRole).(string); ok {
		actor.Role = v
	}
	return actor
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

func parseBody(c *fiber.Ctx, payload interface{}) error {
	if err := c.BodyParser(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	return nil
}

// respondError maps service errors to HTTP responses.
func respondError(c *fiber.Ctx, logger zerolog.Logger, err error) error {
	switch {
	case validation.IsValidationError(err):
		return utils.Fail(c, fiber.StatusBadRequest, "validation failed", validation.Messages(err))
	case errors.Is(err, service.ErrClassNotFound),
		errors.Is(err, service.ErrStudentNotFound),
		errors.Is(err, service.ErrLessonNotFound),
		errors.Is(err, service.ErrUnknownAssessment),
		errors.Is(err, service.ErrConfirmationNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case service.IsPlanningPrecondition(err):
		return utils.Fail(c, fiber.StatusUnprocessableEntity, err.Error(), fiber.Map{"redirect": RedirectPlanning})
	case errors.Is(err, service.ErrLessonsExist):
		return utils.Fail(c, fiber.StatusConflict, err.Error(), fiber.Map{"overwrite_required": true})
	case errors.Is(err, service.ErrSuggestionBusy):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidScore),
		errors.Is(err, service.ErrInvalidGrade),
		errors.Is(err, service.ErrInvalidSection),
		errors.Is(err, service.ErrEmptyImport),
		errors.Is(err, service.ErrDateRangeTooLong),
		errors.Is(err, service.ErrLessonWithoutTopic):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(logger, c).Error().Err(err).Str("path", c.Path()).Msg("request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
