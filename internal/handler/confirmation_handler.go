package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sirius-edu-api/internal/middleware"
	"github.com/noah-isme/sirius-edu-api/internal/service"
	"github.com/noah-isme/sirius-edu-api/internal/utils"
)

// ConfirmationHandler redeems pending deletion tokens.
type ConfirmationHandler struct {
	service service.ConfirmationService
	logger  zerolog.Logger
}

// NewConfirmationHandler constructs the handler.
func NewConfirmationHandler(service service.ConfirmationService, logger zerolog.Logger) *ConfirmationHandler {
	return &ConfirmationHandler{
		service: service,
		logger:  logger.With().Str("component", "confirmation_handler").Logger(),
	}
}

// Register attaches the confirmation route.
func (h *ConfirmationHandler) Register(router fiber.Router) {
	router.Post("/:token", middleware.RequireWriter(), h.confirm)
}

func (h *ConfirmationHandler) confirm(c *fiber.Ctx) error {
	result, err := h.service.Confirm(c.UserContext(), param(c, "token"))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	requestLogger(h.logger, c).Info().
		Str("kind", result.Kind).
		Str("actor_id", actorFromContext(c).ID).
		Msg("deletion confirmed by user")
	return utils.SendSuccess(c, "deletion confirmed", result)
}
