package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sirius-edu-api/internal/dto"
	"github.com/noah-isme/sirius-edu-api/internal/models"
	"github.com/noah-isme/sirius-edu-api/internal/observability"
	"github.com/noah-isme/sirius-edu-api/internal/repository"
)

// GradebookService reads and writes the scores of a class.
type GradebookService interface {
	SetScore(ctx context.Context, classID, studentID, assessmentID string, payload dto.ScoreUpdateRequest) (dto.ScoreUpdateResponse, error)
	BulkFill(ctx context.Context, actor Actor, classID, assessmentID string, payload dto.BulkFillRequest) (dto.BulkFillResponse, error)
	Report(ctx context.Context, classID string) (dto.GradebookResponse, error)
}

type gradebookService struct {
	repo      repository.ClassRepository
	events    EventPublisher
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewGradebookService constructs the gradebook service.
func NewGradebookService(repo repository.ClassRepository, events EventPublisher, validate *validator.Validate, logger zerolog.Logger) GradebookService {
	if events == nil {
		events = NopEventPublisher()
	}
	return &gradebookService{
		repo:      repo,
		events:    events,
		validator: validate,
		logger:    logger.With().Str("component", "gradebook_service").Logger(),
	}
}

// SetScore stores a single score. Invalid input leaves the store untouched and
// returns the current value with Applied=false.
func (s *gradebookService) SetScore(ctx context.Context, classID, studentID, assessmentID string, payload dto.ScoreUpdateRequest) (dto.ScoreUpdateResponse, error) {
	if _, ok := models.FindAssessment(assessmentID); !ok {
		return dto.ScoreUpdateResponse{}, ErrUnknownAssessment
	}

	class, err := s.repo.Get(ctx, classID)
	if err != nil {
		return dto.ScoreUpdateResponse{}, mapClassError(err)
	}
	if findStudent(class.Students, studentID) < 0 {
		return dto.ScoreUpdateResponse{}, ErrStudentNotFound
	}

	value, normErr := NormalizeScore(payload.Value)
	if normErr == nil {
		normErr = s.validator.Struct(payload)
	}
	if normErr != nil {
		observability.GradeUpdates().WithLabelValues("rejected").Inc()
		s.logger.Debug().
			Str("class_id", classID).
			Str("student_id", studentID).
			Str("assessment_id", assessmentID).
			Msg("score input ignored")
		return scoreResponse(class.Grades[studentID], studentID, assessmentID, false), nil
	}

	updated, err := s.repo.Update(ctx, classID, func(class *models.ClassGroup) error {
		if findStudent(class.Students, studentID) < 0 {
			return ErrStudentNotFound
		}
		setScore(class, studentID, assessmentID, value)
		return nil
	})
	if err != nil {
		return dto.ScoreUpdateResponse{}, mapClassError(err)
	}

	observability.GradeUpdates().WithLabelValues("applied").Inc()
	return scoreResponse(updated.Grades[studentID], studentID, assessmentID, true), nil
}

func (s *gradebookService) BulkFill(ctx context.Context, actor Actor, classID, assessmentID string, payload dto.BulkFillRequest) (dto.BulkFillResponse, error) {
	if _, ok := models.FindAssessment(assessmentID); !ok {
		return dto.BulkFillResponse{}, ErrUnknownAssessment
	}
	payload.Value = strings.TrimSpace(payload.Value)
	if err := s.validator.Struct(payload); err != nil {
		return dto.BulkFillResponse{}, err
	}

	value, err := NormalizeScore(payload.Value)
	if err != nil {
		return dto.BulkFillResponse{}, err
	}

	updatedCount := 0
	_, err = s.repo.Update(ctx, classID, func(class *models.ClassGroup) error {
		for _, student := range class.Students {
			if payload.Mode == dto.BulkFillEmpty && class.Grades.Score(student.ID, assessmentID) != "" {
				continue
			}
			setScore(class, student.ID, assessmentID, value)
			updatedCount++
		}
		return nil
	})
	if err != nil {
		return dto.BulkFillResponse{}, mapClassError(err)
	}

	observability.GradeUpdates().WithLabelValues("bulk").Add(float64(updatedCount))
	s.logger.Info().
		Str("class_id", classID).
		Str("assessment_id", assessmentID).
		Str("mode", payload.Mode).
		Int("updated", updatedCount).
		Msg("gradebook bulk fill applied")
	s.events.Publish(ctx, DomainEvent{
		Type:    EventGradesBulkFilled,
		ClassID: classID,
		ActorID: actor.ID,
		Metadata: map[string]interface{}{
			"assessment_id": assessmentID,
			"mode":          payload.Mode,
			"updated":       updatedCount,
		},
	})

	return dto.BulkFillResponse{
		AssessmentID: assessmentID,
		Mode:         payload.Mode,
		Value:        value,
		Updated:      updatedCount,
	}, nil
}

func (s *gradebookService) Report(ctx context.Context, classID string) (dto.GradebookResponse, error) {
	class, err := s.repo.Get(ctx, classID)
	if err != nil {
		return dto.GradebookResponse{}, mapClassError(err)
	}

	rows := make([]dto.GradebookRow, 0, len(class.Students))
	for idx, student := range class.Students {
		scores := make(map[string]string, len(models.Assessments))
		for _, assessment := range models.Assessments {
			scores[assessment.ID] = class.Grades.Score(student.ID, assessment.ID)
		}
		display, value := ComputeAverage(scores)
		rows = append(rows, dto.GradebookRow{
			Index:              idx + 1,
			StudentID:          student.ID,
			Name:               student.Name,
			RegistrationNumber: student.RegistrationNumber,
			Scores:             scores,
			Average:            display,
			AverageValue:       value,
			BelowPassing:       value < PassingAverage,
		})
	}

	return dto.GradebookResponse{
		ClassID:     class.ID,
		ClassName:   class.Name,
		Subject:     class.Subject,
		Assessments: append([]models.Assessment(nil), models.Assessments...),
		Rows:        rows,
	}, nil
}

func setScore(class *models.ClassGroup, studentID, assessmentID, value string) {
	if class.Grades == nil {
		class.Grades = make(models.GradeMap)
	}
	row := class.Grades[studentID]
	if value == "" {
		delete(row, assessmentID)
		if len(row) == 0 {
			delete(class.Grades, studentID)
		}
		return
	}
	if row == nil {
		row = make(map[string]string)
		class.Grades[studentID] = row
	}
	row[assessmentID] = value
}

func scoreResponse(scores map[string]string, studentID, assessmentID string, applied bool) dto.ScoreUpdateResponse {
	display, value := ComputeAverage(scores)
	return dto.ScoreUpdateResponse{
		StudentID:    studentID,
		AssessmentID: assessmentID,
		Value:        scores[assessmentID],
		Applied:      applied,
		Average:      display,
		AverageValue: value,
	}
}
