package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sirius-edu-api/internal/dto"
	"github.com/noah-isme/sirius-edu-api/internal/identity"
	"github.com/noah-isme/sirius-edu-api/internal/models"
	"github.com/noah-isme/sirius-edu-api/internal/repository"
)

// GradeOptions are the selectable school years.
var GradeOptions = []string{
	"6º Ano - Fundamental II",
	"7º Ano - Fundamental II",
	"8º Ano - Fundamental II",
	"9º Ano - Fundamental II",
	"1ª Série - Ensino Médio",
	"2ª Série - Ensino Médio",
	"3ª Série - Ensino Médio",
}

// SectionSingle is the section value for schools with a single class per year.
const SectionSingle = "Única"

// SectionOptions are the selectable section letters.
var SectionOptions = []string{"A", "B", "C", "D", "E", SectionSingle}

const deleteClassPrompt = "Tem certeza que deseja excluir esta turma e todos os seus dados?"

// ClassService manages class creation, listing and removal.
type ClassService interface {
	Options() dto.ClassOptionsResponse
	Create(ctx context.Context, actor Actor, payload dto.ClassCreateRequest) (dto.ClassDetailResponse, error)
	List(ctx context.Context) ([]dto.ClassSummaryResponse, error)
	Get(ctx context.Context, id string) (dto.ClassDetailResponse, error)
	RequestDelete(ctx context.Context, id string) (dto.PendingDeletionResponse, error)
}

type classService struct {
	repo          repository.ClassRepository
	confirmations ConfirmationService
	events        EventPublisher
	ids           identity.Generator
	validator     *validator.Validate
	logger        zerolog.Logger
}

// NewClassService constructs the class service and registers its deletion handler.
func NewClassService(repo repository.ClassRepository, confirmations ConfirmationService, events EventPublisher, ids identity.Generator, validate *validator.Validate, logger zerolog.Logger) ClassService {
	if events == nil {
		events = NopEventPublisher()
	}
	s := &classService{
		repo:          repo,
		confirmations: confirmations,
		events:        events,
		ids:           ids,
		validator:     validate,
		logger:        logger.With().Str("component", "class_service").Logger(),
	}
	confirmations.Handle(DeletionClass, s.deleteClass)
	return s
}

// ComposeClassName builds the display name from a grade and section.
func ComposeClassName(grade, section string) (string, error) {
	grade = strings.TrimSpace(grade)
	if !containsFold(GradeOptions, grade) {
		return "", ErrInvalidGrade
	}
	grade = canonicalOption(GradeOptions, grade)

	section = strings.TrimSpace(section)
	if !containsFold(SectionOptions, section) {
		return "", ErrInvalidSection
	}
	section = canonicalOption(SectionOptions, section)

	if section == SectionSingle {
		return fmt.Sprintf("%s - %s", grade, SectionSingle), nil
	}
	return fmt.Sprintf("%s - Turma %s", grade, section), nil
}

func (s *classService) Options() dto.ClassOptionsResponse {
	return dto.ClassOptionsResponse{
		Grades:   append([]string(nil), GradeOptions...),
		Sections: append([]string(nil), SectionOptions...),
	}
}

func (s *classService) Create(ctx context.Context, actor Actor, payload dto.ClassCreateRequest) (dto.ClassDetailResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ClassDetailResponse{}, err
	}

	name, err := ComposeClassName(payload.Grade, payload.Section)
	if err != nil {
		return dto.ClassDetailResponse{}, err
	}

	class, err := s.repo.Create(ctx, models.ClassGroup{
		ID:        s.ids.NewID(),
		TeacherID: actor.ID,
		Name:      name,
		Subject:   strings.TrimSpace(payload.Subject),
	})
	if err != nil {
		return dto.ClassDetailResponse{}, err
	}

	s.logger.Info().Str("class_id", class.ID).Str("name", class.Name).Msg("class created")
	s.events.Publish(ctx, DomainEvent{
		Type:     EventClassCreated,
		ClassID:  class.ID,
		ActorID:  actor.ID,
		Metadata: map[string]interface{}{"name": class.Name, "subject": class.Subject},
	})

	return dto.NewClassDetailResponse(class), nil
}

func (s *classService) List(ctx context.Context) ([]dto.ClassSummaryResponse, error) {
	classes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewClassSummaryResponses(classes), nil
}

func (s *classService) Get(ctx context.Context, id string) (dto.ClassDetailResponse, error) {
	class, err := s.repo.Get(ctx, id)
	if err != nil {
		return dto.ClassDetailResponse{}, mapClassError(err)
	}
	return dto.NewClassDetailResponse(class), nil
}

func (s *classService) RequestDelete(ctx context.Context, id string) (dto.PendingDeletionResponse, error) {
	class, err := s.repo.Get(ctx, id)
	if err != nil {
		return dto.PendingDeletionResponse{}, mapClassError(err)
	}
	pending := s.confirmations.Request(DeletionClass, class.ID, class.ID, deleteClassPrompt)
	return pending.Response(), nil
}

func (s *classService) deleteClass(ctx context.Context, pending PendingDeletion) error {
	removed, err := s.repo.Delete(ctx, pending.ClassID)
	if err != nil {
		return mapClassError(err)
	}

	s.logger.Info().
		Str("class_id", removed.ID).
		Int("students", len(removed.Students)).
		Int("lessons", len(removed.Lessons)).
		Msg("class deleted")
	s.events.Publish(ctx, DomainEvent{
		Type:    EventClassDeleted,
		ClassID: removed.ID,
		Metadata: map[string]interface{}{
			"students": len(removed.Students),
			"lessons":  len(removed.Lessons),
		},
	})
	return nil
}

func mapClassError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrClassNotFound
	}
	return err
}

func containsFold(options []string, value string) bool {
	for _, option := range options {
		if strings.EqualFold(option, value) {
			return true
		}
	}
	return false
}

func canonicalOption(options []string, value string) string {
	for _, option := range options {
		if strings.EqualFold(option, value) {
			return option
		}
	}
	return value
}
