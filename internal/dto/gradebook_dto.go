package dto

import "github.com/noah-isme/sirius-edu-api/internal/models"

// Bulk fill modes.
const (
	BulkFillEmpty     = "fill-empty"
	BulkFillOverwrite = "overwrite-all"
)

// ScoreUpdateRequest sets a single score. An empty value clears it.
type ScoreUpdateRequest struct {
	Value string `json:"value" validate:"max=16"`
}

// ScoreUpdateResponse reports the stored score and the recomputed average.
type ScoreUpdateResponse struct {
	StudentID    string  `json:"student_id"`
	AssessmentID string  `json:"assessment_id"`
	Value        string  `json:"value"`
	Applied      bool    `json:"applied"`
	Average      string  `json:"average"`
	AverageValue float64 `json:"average_value"`
}

// BulkFillRequest applies one value to every student for an assessment.
type BulkFillRequest struct {
	Value string `json:"value" validate:"required,max=16"`
	Mode  string `json:"mode" validate:"required,oneof=fill-empty overwrite-all"`
}

// BulkFillResponse reports how many students were updated.
type BulkFillResponse struct {
	AssessmentID string `json:"assessment_id"`
	Mode         string `json:"mode"`
	Value        string `json:"value"`
	Updated      int    `json:"updated"`
}

// GradebookRow is one student line of the gradebook.
type GradebookRow struct {
	Index              int               `json:"index"`
	StudentID          string            `json:"student_id"`
	Name               string            `json:"name"`
	RegistrationNumber string            `json:"registration_number"`
	Scores             map[string]string `json:"scores"`
	Average            string            `json:"average"`
	AverageValue       float64           `json:"average_value"`
	BelowPassing       bool              `json:"below_passing"`
}

// GradebookResponse is the full gradebook of a class.
type GradebookResponse struct {
	ClassID     string              `json:"class_id"`
	ClassName   string              `json:"class_name"`
	Subject     string              `json:"subject"`
	Assessments []models.Assessment `json:"assessments"`
	Rows        []GradebookRow      `json:"rows"`
}
