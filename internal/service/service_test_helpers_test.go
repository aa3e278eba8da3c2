package service

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sirius-edu-api/internal/dto"
	"github.com/noah-isme/sirius-edu-api/internal/identity"
	"github.com/noah-isme/sirius-edu-api/internal/models"
	"github.com/noah-isme/sirius-edu-api/internal/repository"
	"github.com/noah-isme/sirius-edu-api/internal/validation"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []DomainEvent
}

func (r *recordingPublisher) Publish(_ context.Context, event DomainEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingPublisher) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]string, 0, len(r.events))
	for _, event := range r.events {
		result = append(result, event.Type)
	}
	return result
}

type serviceFixture struct {
	repo          repository.ClassRepository
	confirmations ConfirmationService
	events        *recordingPublisher
	classes       ClassService
	roster        RosterService
	planning      LessonPlanService
	gradebook     GradebookService
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	repo := repository.NewClassRepository()
	confirmations := NewConfirmationService(identity.NewSequence("token"), time.Minute, testLogger())
	events := &recordingPublisher{}
	validate := validation.Default()

	return &serviceFixture{
		repo:          repo,
		confirmations: confirmations,
		events:        events,
		classes:       NewClassService(repo, confirmations, events, identity.NewSequence("class"), validate, testLogger()),
		roster:        NewRosterService(repo, confirmations, events, identity.NewSequence("student"), &sequentialRegistrations{}, validate, testLogger()),
		planning:      NewLessonPlanService(repo, confirmations, events, identity.NewSequence("lesson"), validate, testLogger()),
		gradebook:     NewGradebookService(repo, events, validate, testLogger()),
	}
}

func (f *serviceFixture) createClass(t *testing.T) dto.ClassDetailResponse {
	t.Helper()
	class, err := f.classes.Create(context.Background(), Actor{ID: "teacher-1", Role: string(models.RoleTeacher)}, dto.ClassCreateRequest{
		Grade:   "6º Ano - Fundamental II",
		Section: "A",
		Subject: "Matemática",
	})
	require.NoError(t, err)
	return class
}

func (f *serviceFixture) addStudent(t *testing.T, classID, name string) models.Student {
	t.Helper()
	student, err := f.roster.AddStudent(context.Background(), classID, dto.StudentCreateRequest{Name: name})
	require.NoError(t, err)
	return student
}

// sequentialRegistrations hands out 10000, 10001, ... so tests can assert numbers.
type sequentialRegistrations struct {
	next atomic.Int64
}

func (s *sequentialRegistrations) NewRegistration() string {
	return strconv.FormatInt(10000+s.next.Add(1)-1, 10)
}
