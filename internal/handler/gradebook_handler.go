package handler

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sirius-edu-api/internal/dto"
	"github.com/noah-isme/sirius-edu-api/internal/middleware"
	"github.com/noah-isme/sirius-edu-api/internal/service"
	"github.com/noah-isme/sirius-edu-api/internal/utils"
)

// GradebookHandler wires gradebook routes under a class.
type GradebookHandler struct {
	service service.GradebookService
	logger  zerolog.Logger
}

// NewGradebookHandler constructs the handler.
func NewGradebookHandler(service service.GradebookService, logger zerolog.Logger) *GradebookHandler {
	return &GradebookHandler{
		service: service,
		logger:  logger.With().Str("component", "gradebook_handler").Logger(),
	}
}

// Register attaches gradebook endpoints to the /classes/:classID group.
func (h *GradebookHandler) Register(router fiber.Router) {
	writer := middleware.RequireWriter()

	router.Get("/gradebook", h.report)
	router.Get("/gradebook/export", h.export)
	router.Put("/gradebook/:studentID/:assessmentID", writer, h.setScore)
	router.Post("/gradebook/:assessmentID/bulk-fill", writer, h.bulkFill)
}

func (h *GradebookHandler) report(c *fiber.Ctx) error {
	report, err := h.service.Report(c.UserContext(), param(c, "classID"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "gradebook retrieved", report)
}

// MIMESpreadsheet is the content type of exported gradebooks.
const MIMESpreadsheet = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *GradebookHandler) export(c *fiber.Ctx) error {
	report, err := h.service.Report(c.UserContext(), param(c, "classID"))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	var buf bytes.Buffer
	if err := service.WriteGradebookXLSX(&buf, report); err != nil {
		return respondError(c, h.logger, err)
	}

	c.Attachment(service.GradebookFileName(report))
	c.Set(fiber.HeaderContentType, MIMESpreadsheet)
	return c.Send(buf.Bytes())
}

func (h *GradebookHandler) setScore(c *fiber.Ctx) error {
	var payload dto.ScoreUpdateRequest
	if err := parseBody(c, &payload); err != nil {
		return err
	}

	response, err := h.service.SetScore(c.UserContext(), param(c, "classID"), param(c, "studentID"), param(c, "assessmentID"), payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	message := "score updated"
	if !response.Applied {
		message = "score ignored"
	}
	return utils.SendSuccess(c, message, response)
}

func (h *GradebookHandler) bulkFill(c *fiber.Ctx) error {
	var payload dto.BulkFillRequest
	if err := parseBody(c, &payload); err != nil {
		return err
	}

	response, err := h.service.BulkFill(c.UserContext(), actorFromContext(c), param(c, "classID"), param(c, "assessmentID"), payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "gradebook filled", response)
}
