package service

import (
	"context"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/noah-isme/sirius-edu-api/internal/dto"
	"github.com/noah-isme/sirius-edu-api/internal/identity"
	"github.com/noah-isme/sirius-edu-api/internal/models"
	"github.com/noah-isme/sirius-edu-api/internal/repository"
)

const deleteStudentPrompt = "Remover este aluno?"

// RosterService manages the students of a class.
type RosterService interface {
	AddStudent(ctx context.Context, classID string, payload dto.StudentCreateRequest) (models.Student, error)
	ImportStudents(ctx context.Context, classID string, payload dto.StudentImportRequest) (dto.StudentImportResponse, error)
	RequestDeleteStudent(ctx context.Context, classID, studentID string) (dto.PendingDeletionResponse, error)
}

type rosterService struct {
	repo          repository.ClassRepository
	confirmations ConfirmationService
	events        EventPublisher
	ids           identity.Generator
	registrations identity.RegistrationGenerator
	validator     *validator.Validate
	logger        zerolog.Logger
}

// NewRosterService constructs the roster service and registers its deletion handler.
func NewRosterService(repo repository.ClassRepository, confirmations ConfirmationService, events EventPublisher, ids identity.Generator, registrations identity.RegistrationGenerator, validate *validator.Validate, logger zerolog.Logger) RosterService {
	if events == nil {
		events = NopEventPublisher()
	}
	s := &rosterService{
		repo:          repo,
		confirmations: confirmations,
		events:        events,
		ids:           ids,
		registrations: registrations,
		validator:     validate,
		logger:        logger.With().Str("component", "roster_service").Logger(),
	}
	confirmations.Handle(DeletionStudent, s.deleteStudent)
	return s
}

func (s *rosterService) AddStudent(ctx context.Context, classID string, payload dto.StudentCreateRequest) (models.Student, error) {
	payload.Name = plainText(payload.Name)
	payload.RegistrationNumber = strings.TrimSpace(payload.RegistrationNumber)
	if err := s.validator.Struct(payload); err != nil {
		return models.Student{}, err
	}

	registration := payload.RegistrationNumber
	if registration == "" {
		registration = s.registrations.NewRegistration()
	}

	student := models.Student{
		ID:                 s.ids.NewID(),
		Name:               payload.Name,
		RegistrationNumber: registration,
	}

	_, err := s.repo.Update(ctx, classID, func(class *models.ClassGroup) error {
		class.Students = append(class.Students, student)
		SortStudents(class.Students)
		return nil
	})
	if err != nil {
		return models.Student{}, mapClassError(err)
	}

	s.events.Publish(ctx, DomainEvent{
		Type:     EventStudentsAdded,
		ClassID:  classID,
		Metadata: map[string]interface{}{"count": 1},
	})

	return student, nil
}

func (s *rosterService) ImportStudents(ctx context.Context, classID string, payload dto.StudentImportRequest) (dto.StudentImportResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentImportResponse{}, err
	}

	names := ParseTopics(payload.Text)
	if len(names) == 0 {
		return dto.StudentImportResponse{}, ErrEmptyImport
	}

	imported := make([]models.Student, 0, len(names))
	for _, name := range names {
		name = plainText(name)
		if name == "" {
			continue
		}
		imported = append(imported, models.Student{
			ID:                 s.ids.NewID(),
			Name:               name,
			RegistrationNumber: s.registrations.NewRegistration(),
		})
	}
	if len(imported) == 0 {
		return dto.StudentImportResponse{}, ErrEmptyImport
	}

	_, err := s.repo.Update(ctx, classID, func(class *models.ClassGroup) error {
		class.Students = append(class.Students, imported...)
		SortStudents(class.Students)
		return nil
	})
	if err != nil {
		return dto.StudentImportResponse{}, mapClassError(err)
	}

	s.logger.Info().Str("class_id", classID).Int("imported", len(imported)).Msg("students imported")
	s.events.Publish(ctx, DomainEvent{
		Type:     EventStudentsAdded,
		ClassID:  classID,
		Metadata: map[string]interface{}{"count": len(imported)},
	})

	SortStudents(imported)
	return dto.StudentImportResponse{Imported: len(imported), Students: imported}, nil
}

func (s *rosterService) RequestDeleteStudent(ctx context.Context, classID, studentID string) (dto.PendingDeletionResponse, error) {
	class, err := s.repo.Get(ctx, classID)
	if err != nil {
		return dto.PendingDeletionResponse{}, mapClassError(err)
	}
	if findStudent(class.Students, studentID) < 0 {
		return dto.PendingDeletionResponse{}, ErrStudentNotFound
	}

	pending := s.confirmations.Request(DeletionStudent, class.ID, studentID, deleteStudentPrompt)
	return pending.Response(), nil
}

func (s *rosterService) deleteStudent(ctx context.Context, pending PendingDeletion) error {
	_, err := s.repo.Update(ctx, pending.ClassID, func(class *models.ClassGroup) error {
		idx := findStudent(class.Students, pending.TargetID)
		if idx < 0 {
			return ErrStudentNotFound
		}
		class.Students = append(class.Students[:idx], class.Students[idx+1:]...)
		delete(class.Grades, pending.TargetID)
		return nil
	})
	if err != nil {
		return mapClassError(err)
	}

	s.events.Publish(ctx, DomainEvent{
		Type:     EventStudentRemoved,
		ClassID:  pending.ClassID,
		Metadata: map[string]interface{}{"student_id": pending.TargetID},
	})
	return nil
}

// SortStudents orders a roster by name using Brazilian Portuguese collation.
func SortStudents(students []models.Student) {
	collator := collate.New(language.BrazilianPortuguese)
	sort.SliceStable(students, func(i, j int) bool {
		return collator.CompareString(students[i].Name, students[j].Name) < 0
	})
}

func findStudent(students []models.Student, id string) int {
	for idx, student := range students {
		if student.ID == id {
			return idx
		}
	}
	return -1
}
