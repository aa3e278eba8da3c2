package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sirius-edu-api/internal/dto"
	"github.com/noah-isme/sirius-edu-api/internal/middleware"
	"github.com/noah-isme/sirius-edu-api/internal/service"
	"github.com/noah-isme/sirius-edu-api/internal/utils"
)

// ClassHandler wires class and roster routes.
type ClassHandler struct {
	classes service.ClassService
	roster  service.RosterService
	logger  zerolog.Logger
}

// NewClassHandler constructs the handler.
func NewClassHandler(classes service.ClassService, roster service.RosterService, logger zerolog.Logger) *ClassHandler {
	return &ClassHandler{
		classes: classes,
		roster:  roster,
		logger:  logger.With().Str("component", "class_handler").Logger(),
	}
}

// Register attaches class endpoints to the /classes group.
func (h *ClassHandler) Register(router fiber.Router) {
	writer := middleware.RequireWriter()

	router.Get("", h.list)
	router.Get("/options", h.options)
	router.Post("", writer, h.create)
	router.Get("/:classID", h.get)
	router.Post("/:classID/delete-requests", writer, h.requestDelete)

	router.Post("/:classID/students", writer, h.addStudent)
	router.Post("/:classID/students/import", writer, h.importStudents)
	router.Post("/:classID/students/:studentID/delete-requests", writer, h.requestDeleteStudent)
}

func (h *ClassHandler) list(c *fiber.Ctx) error {
	classes, err := h.classes.List(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "classes retrieved", classes)
}

func (h *ClassHandler) options(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "class options retrieved", h.classes.Options())
}

func (h *ClassHandler) create(c *fiber.Ctx) error {
	var payload dto.ClassCreateRequest
	if err := parseBody(c, &payload); err != nil {
		return err
	}

	class, err := h.classes.Create(c.UserContext(), actorFromContext(c), payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "class created", class)
}

func (h *ClassHandler) get(c *fiber.Ctx) error {
	class, err := h.classes.Get(c.UserContext(), param(c, "classID"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "class retrieved", class)
}

func (h *ClassHandler) requestDelete(c *fiber.Ctx) error {
	pending, err := h.classes.RequestDelete(c.UserContext(), param(c, "classID"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusAccepted, pending.Prompt, pending)
}

func (h *ClassHandler) addStudent(c *fiber.Ctx) error {
	var payload dto.StudentCreateRequest
	if err := parseBody(c, &payload); err != nil {
		return err
	}

	student, err := h.roster.AddStudent(c.UserContext(), param(c, "classID"), payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "student added", student)
}

func (h *ClassHandler) importStudents(c *fiber.Ctx) error {
	var payload dto.StudentImportRequest
	if err := parseBody(c, &payload); err != nil {
		return err
	}

	result, err := h.roster.ImportStudents(c.UserContext(), param(c, "classID"), payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "students imported", result)
}

func (h *ClassHandler) requestDeleteStudent(c *fiber.Ctx) error {
	pending, err := h.roster.RequestDeleteStudent(c.UserContext(), param(c, "classID"), param(c, "studentID"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusAccepted, pending.Prompt, pending)
}
