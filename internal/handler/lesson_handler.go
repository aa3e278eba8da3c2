package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sirius-edu-api/internal/dto"
	"github.com/noah-isme/sirius-edu-api/internal/middleware"
	"github.com/noah-isme/sirius-edu-api/internal/service"
	"github.com/noah-isme/sirius-edu-api/internal/utils"
)

// LessonHandler wires planning, calendar and suggestion routes under a class.
type LessonHandler struct {
	planning    service.LessonPlanService
	suggestions service.SuggestionService
	logger      zerolog.Logger
}

// NewLessonHandler constructs the handler.
func NewLessonHandler(planning service.LessonPlanService, suggestions service.SuggestionService, logger zerolog.Logger) *LessonHandler {
	return &LessonHandler{
		planning:    planning,
		suggestions: suggestions,
		logger:      logger.With().Str("component", "lesson_handler").Logger(),
	}
}

// Register attaches lesson endpoints to the /classes/:classID group.
func (h *LessonHandler) Register(router fiber.Router) {
	writer := middleware.RequireWriter()

	router.Put("/planning", writer, h.savePlanning)
	router.Post("/lessons/generate", writer, h.generate)
	router.Get("/lessons", h.list)
	router.Patch("/lessons/:lessonID", writer, h.update)
	router.Post("/lessons/:lessonID/delete-requests", writer, h.requestDelete)
	router.Post("/lessons/:lessonID/suggestion", writer, middleware.RateLimit("suggestion", 6, time.Minute), h.suggest)
}

func (h *LessonHandler) savePlanning(c *fiber.Ctx) error {
	var payload dto.PlanningRequest
	if err := parseBody(c, &payload); err != nil {
		return err
	}

	response, err := h.planning.SavePlanning(c.UserContext(), param(c, "classID"), payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "planning saved", response)
}

func (h *LessonHandler) generate(c *fiber.Ctx) error {
	var payload dto.GenerateLessonsRequest
	if err := parseBody(c, &payload); err != nil {
		return err
	}

	response, err := h.planning.GenerateLessons(c.UserContext(), actorFromContext(c), param(c, "classID"), payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "lessons generated", response)
}

func (h *LessonHandler) list(c *fiber.Ctx) error {
	response, err := h.planning.ListLessons(c.UserContext(), param(c, "classID"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "lessons retrieved", response)
}

func (h *LessonHandler) update(c *fiber.Ctx) error {
	var payload dto.LessonUpdateRequest
	if err := parseBody(c, &payload); err != nil {
		return err
	}

	lesson, err := h.planning.UpdateLesson(c.UserContext(), param(c, "classID"), param(c, "lessonID"), payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "lesson updated", lesson)
}

func (h *LessonHandler) requestDelete(c *fiber.Ctx) error {
	pending, err := h.planning.RequestDeleteLesson(c.UserContext(), param(c, "classID"), param(c, "lessonID"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusAccepted, pending.Prompt, pending)
}

func (h *LessonHandler) suggest(c *fiber.Ctx) error {
	lesson, err := h.suggestions.Suggest(c.UserContext(), param(c, "classID"), param(c, "lessonID"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "lesson suggestion applied", lesson)
}
