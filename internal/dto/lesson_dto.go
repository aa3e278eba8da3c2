package dto

import "github.com/noah-isme/sirius-edu-api/internal/models"

// ScheduleEntry configures the lesson count for one weekday (0 = Sunday).
type ScheduleEntry struct {
	DayOfWeek    int `json:"day_of_week" validate:"min=0,max=6"`
	LessonsCount int `json:"lessons_count" validate:"min=0,max=12"`
}

// PlanningRequest stores the planning text and weekly schedule of a class.
type PlanningRequest struct {
	PlanningText string          `json:"planning_text"`
	Schedule     []ScheduleEntry `json:"schedule" validate:"dive"`
}

// PlanningResponse echoes the stored planning configuration.
type PlanningResponse struct {
	ClassID      string                 `json:"class_id"`
	PlanningText string                 `json:"planning_text"`
	Topics       int                    `json:"topics"`
	Schedule     []models.ClassSchedule `json:"schedule"`
}

// GenerateLessonsRequest asks for the lesson calendar to be regenerated.
type GenerateLessonsRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Overwrite bool   `json:"overwrite"`
}

// LessonListResponse wraps the lessons of a class.
type LessonListResponse struct {
	ClassID string          `json:"class_id"`
	Count   int             `json:"count"`
	Lessons []models.Lesson `json:"lessons"`
}

// LessonUpdateRequest edits a single lesson in place.
type LessonUpdateRequest struct {
	Topic     *string `json:"topic" validate:"omitempty,max=500"`
	Content   *string `json:"content"`
	Completed *bool   `json:"completed"`
}

// NewLessonListResponse builds the listing payload.
func NewLessonListResponse(classID string, lessons []models.Lesson) LessonListResponse {
	if lessons == nil {
		lessons = []models.Lesson{}
	}
	return LessonListResponse{ClassID: classID, Count: len(lessons), Lessons: lessons}
}
