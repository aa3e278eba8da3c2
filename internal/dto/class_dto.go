package dto

import (
	"time"

	"github.com/noah-isme/sirius-edu-api/internal/models"
)

// ClassCreateRequest captures the structured grade/section/subject selection.
type ClassCreateRequest struct {
	Grade   string `json:"grade" validate:"required,max=64"`
	Section string `json:"section" validate:"required,max=16"`
	Subject string `json:"subject" validate:"required,max=120"`
}

// ClassOptionsResponse lists the selectable grades and sections.
type ClassOptionsResponse struct {
	Grades   []string `json:"grades"`
	Sections []string `json:"sections"`
}

// ClassSummaryResponse is the compact representation used in listings.
type ClassSummaryResponse struct {
	ID           string `json:"id"`
	TeacherID    string `json:"teacher_id"`
	Name         string `json:"name"`
	Subject      string `json:"subject"`
	StudentCount int    `json:"student_count"`
	LessonCount  int    `json:"lesson_count"`
}

// ClassDetailResponse exposes the class together with its roster and schedule.
type ClassDetailResponse struct {
	ClassSummaryResponse
	Schedule     []models.ClassSchedule `json:"schedule"`
	PlanningText string                 `json:"planning_text"`
	Students     []models.Student       `json:"students"`
}

// NewClassSummaryResponse maps a class into its listing payload.
func NewClassSummaryResponse(class models.ClassGroup) ClassSummaryResponse {
	return ClassSummaryResponse{
		ID:           class.ID,
		TeacherID:    class.TeacherID,
		Name:         class.Name,
		Subject:      class.Subject,
		StudentCount: len(class.Students),
		LessonCount:  len(class.Lessons),
	}
}

// NewClassSummaryResponses maps a slice of classes.
func NewClassSummaryResponses(classes []models.ClassGroup) []ClassSummaryResponse {
	result := make([]ClassSummaryResponse, 0, len(classes))
	for _, class := range classes {
		result = append(result, NewClassSummaryResponse(class))
	}
	return result
}

// NewClassDetailResponse maps a class into its detailed payload.
func NewClassDetailResponse(class models.ClassGroup) ClassDetailResponse {
	students := class.Students
	if students == nil {
		students = []models.Student{}
	}
	schedule := class.Schedule
	if schedule == nil {
		schedule = []models.ClassSchedule{}
	}
	return ClassDetailResponse{
		ClassSummaryResponse: NewClassSummaryResponse(class),
		Schedule:             schedule,
		PlanningText:         class.PlanningText,
		Students:             students,
	}
}

// StudentCreateRequest adds a single student to a roster.
type StudentCreateRequest struct {
	Name               string `json:"name" validate:"required,max=200"`
	RegistrationNumber string `json:"registration_number" validate:"max=32"`
}

// StudentImportRequest carries a line-delimited list of names.
type StudentImportRequest struct {
	Text string `json:"text" validate:"required"`
}

// StudentImportResponse reports the outcome of a bulk import.
type StudentImportResponse struct {
	Imported int              `json:"imported"`
	Students []models.Student `json:"students"`
}

// PendingDeletionResponse is returned by every delete request and must be confirmed.
type PendingDeletionResponse struct {
	Token     string    `json:"token"`
	Kind      string    `json:"kind"`
	ClassID   string    `json:"class_id"`
	TargetID  string    `json:"target_id"`
	Prompt    string    `json:"prompt"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ConfirmationResponse describes the mutation performed by a confirmed token.
type ConfirmationResponse struct {
	Kind     string `json:"kind"`
	ClassID  string `json:"class_id"`
	TargetID string `json:"target_id"`
}
