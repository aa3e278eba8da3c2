package service

import (
	"context"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/noah-isme/sirius-edu-api/internal/dto"
	"github.com/noah-isme/sirius-edu-api/internal/identity"
	"github.com/noah-isme/sirius-edu-api/internal/models"
	"github.com/noah-isme/sirius-edu-api/internal/observability"
	"github.com/noah-isme/sirius-edu-api/internal/repository"
)

const deleteLessonPrompt = "Remover esta aula do diário?"

// LessonPlanService owns the planning text, weekly schedule and lesson calendar of a class.
type LessonPlanService interface {
	SavePlanning(ctx context.Context, classID string, payload dto.PlanningRequest) (dto.PlanningResponse, error)
	GenerateLessons(ctx context.Context, actor Actor, classID string, payload dto.GenerateLessonsRequest) (dto.LessonListResponse, error)
	ListLessons(ctx context.Context, classID string) (dto.LessonListResponse, error)
	UpdateLesson(ctx context.Context, classID, lessonID string, payload dto.LessonUpdateRequest) (models.Lesson, error)
	RequestDeleteLesson(ctx context.Context, classID, lessonID string) (dto.PendingDeletionResponse, error)
}

type lessonPlanService struct {
	repo          repository.ClassRepository
	confirmations ConfirmationService
	events        EventPublisher
	ids           identity.Generator
	validator     *validator.Validate
	logger        zerolog.Logger
}

// NewLessonPlanService constructs the planning service and registers its deletion handler.
func NewLessonPlanService(repo repository.ClassRepository, confirmations ConfirmationService, events EventPublisher, ids identity.Generator, validate *validator.Validate, logger zerolog.Logger) LessonPlanService {
	if events == nil {
		events = NopEventPublisher()
	}
	s := &lessonPlanService{
		repo:          repo,
		confirmations: confirmations,
		events:        events,
		ids:           ids,
		validator:     validate,
		logger:        logger.With().Str("component", "lesson_plan_service").Logger(),
	}
	confirmations.Handle(DeletionLesson, s.deleteLesson)
	return s
}

func (s *lessonPlanService) SavePlanning(ctx context.Context, classID string, payload dto.PlanningRequest) (dto.PlanningResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.PlanningResponse{}, err
	}

	schedule := buildSchedule(payload.Schedule)
	class, err := s.repo.Update(ctx, classID, func(class *models.ClassGroup) error {
		class.PlanningText = payload.PlanningText
		class.Schedule = schedule
		return nil
	})
	if err != nil {
		return dto.PlanningResponse{}, mapClassError(err)
	}

	return dto.PlanningResponse{
		ClassID:      class.ID,
		PlanningText: class.PlanningText,
		Topics:       len(ParseTopics(class.PlanningText)),
		Schedule:     class.Schedule,
	}, nil
}

func (s *lessonPlanService) GenerateLessons(ctx context.Context, actor Actor, classID string, payload dto.GenerateLessonsRequest) (dto.LessonListResponse, error) {
	tracer := otel.Tracer("github.com/noah-isme/sirius-edu-api/internal/service/lesson_plan")
	ctx, span := tracer.Start(ctx, "lessons.generate")
	span.SetAttributes(attribute.String("lessons.class_id", classID))
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.LessonListResponse{}, err
	}

	start, err := ParseLessonDate(payload.StartDate)
	if err != nil {
		return dto.LessonListResponse{}, err
	}
	end, err := ParseLessonDate(payload.EndDate)
	if err != nil {
		return dto.LessonListResponse{}, err
	}
	if err := CheckGenerationSpan(start, end); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "range_too_long")
		return dto.LessonListResponse{}, err
	}

	var generated []models.Lesson
	class, err := s.repo.Update(ctx, classID, func(class *models.ClassGroup) error {
		lessons, err := PlanLessons(DistributionInput{
			ClassID:  class.ID,
			Topics:   ParseTopics(class.PlanningText),
			Start:    start,
			End:      end,
			Schedule: class.WeeklySchedule(),
		}, s.ids)
		if err != nil {
			return err
		}
		if len(class.Lessons) > 0 && !payload.Overwrite {
			return ErrLessonsExist
		}
		class.Lessons = lessons
		generated = lessons
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation_rejected")
		return dto.LessonListResponse{}, mapClassError(err)
	}

	observability.LessonsGenerated().Add(float64(len(generated)))
	span.SetAttributes(attribute.Int("lessons.count", len(generated)))

	s.logger.Info().
		Str("class_id", class.ID).
		Str("start", payload.StartDate).
		Str("end", payload.EndDate).
		Int("lessons", len(generated)).
		Msg("lesson calendar generated")
	s.events.Publish(ctx, DomainEvent{
		Type:    EventLessonsGenerated,
		ClassID: class.ID,
		ActorID: actor.ID,
		Metadata: map[string]interface{}{
			"count":      len(generated),
			"start_date": payload.StartDate,
			"end_date":   payload.EndDate,
		},
	})

	return dto.NewLessonListResponse(class.ID, class.Lessons), nil
}

func (s *lessonPlanService) ListLessons(ctx context.Context, classID string) (dto.LessonListResponse, error) {
	class, err := s.repo.Get(ctx, classID)
	if err != nil {
		return dto.LessonListResponse{}, mapClassError(err)
	}
	return dto.NewLessonListResponse(class.ID, class.Lessons), nil
}

func (s *lessonPlanService) UpdateLesson(ctx context.Context, classID, lessonID string, payload dto.LessonUpdateRequest) (models.Lesson, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Lesson{}, err
	}

	var updated models.Lesson
	_, err := s.repo.Update(ctx, classID, func(class *models.ClassGroup) error {
		idx := findLesson(class.Lessons, lessonID)
		if idx < 0 {
			return ErrLessonNotFound
		}
		lesson := class.Lessons[idx]
		if payload.Topic != nil {
			lesson.Topic = *payload.Topic
		}
		if payload.Content != nil {
			lesson.Content = *payload.Content
		}
		if payload.Completed != nil {
			lesson.Completed = *payload.Completed
		}
		class.Lessons[idx] = lesson
		updated = lesson
		return nil
	})
	if err != nil {
		return models.Lesson{}, mapClassError(err)
	}

	return updated, nil
}

func (s *lessonPlanService) RequestDeleteLesson(ctx context.Context, classID, lessonID string) (dto.PendingDeletionResponse, error) {
	class, err := s.repo.Get(ctx, classID)
	if err != nil {
		return dto.PendingDeletionResponse{}, mapClassError(err)
	}
	if findLesson(class.Lessons, lessonID) < 0 {
		return dto.PendingDeletionResponse{}, ErrLessonNotFound
	}

	pending := s.confirmations.Request(DeletionLesson, class.ID, lessonID, deleteLessonPrompt)
	return pending.Response(), nil
}

func (s *lessonPlanService) deleteLesson(ctx context.Context, pending PendingDeletion) error {
	_, err := s.repo.Update(ctx, pending.ClassID, func(class *models.ClassGroup) error {
		idx := findLesson(class.Lessons, pending.TargetID)
		if idx < 0 {
			return ErrLessonNotFound
		}
		class.Lessons = append(class.Lessons[:idx], class.Lessons[idx+1:]...)
		return nil
	})
	return mapClassError(err)
}

func buildSchedule(entries []dto.ScheduleEntry) []models.ClassSchedule {
	byDay := make(map[int]int, len(entries))
	for _, entry := range entries {
		if entry.LessonsCount <= 0 {
			delete(byDay, entry.DayOfWeek)
			continue
		}
		byDay[entry.DayOfWeek] = entry.LessonsCount
	}

	schedule := make([]models.ClassSchedule, 0, len(byDay))
	for day, count := range byDay {
		schedule = append(schedule, models.ClassSchedule{DayOfWeek: day, LessonsCount: count})
	}
	sort.Slice(schedule, func(i, j int) bool { return schedule[i].DayOfWeek < schedule[j].DayOfWeek })
	return schedule
}

func findLesson(lessons []models.Lesson, id string) int {
	id = strings.TrimSpace(id)
	for idx, lesson := range lessons {
		if lesson.ID == id {
			return idx
		}
	}
	return -1
}

// lessonByID returns the lesson and whether it was found.
func lessonByID(lessons []models.Lesson, id string) (models.Lesson, bool) {
	if idx := findLesson(lessons, id); idx >= 0 {
		return lessons[idx], true
	}
	return models.Lesson{}, false
}
