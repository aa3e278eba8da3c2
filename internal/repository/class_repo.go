package repository

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/noah-isme/sirius-edu-api/internal/models"
)

// ErrNotFound is returned when a record does not exist in the store.
var ErrNotFound = errors.New("record not found")

// ClassMutation edits a private copy of a class. Returning an error discards the copy.
type ClassMutation func(class *models.ClassGroup) error

// ClassRepository is the in-memory record store holding every class and the data it owns.
type ClassRepository interface {
	List(ctx context.Context) ([]models.ClassGroup, error)
	Get(ctx context.Context, id string) (models.ClassGroup, error)
	Create(ctx context.Context, class models.ClassGroup) (models.ClassGroup, error)
	Update(ctx context.Context, id string, mutate ClassMutation) (models.ClassGroup, error)
	Delete(ctx context.Context, id string) (models.ClassGroup, error)
	Revision() uint64
}

type classRepository struct {
	mu       sync.RWMutex
	order    []string
	classes  map[string]models.ClassGroup
	revision uint64
}

// NewClassRepository constructs an empty store.
func NewClassRepository() ClassRepository {
	return &classRepository{classes: make(map[string]models.ClassGroup)}
}

func (r *classRepository) List(ctx context.Context) ([]models.ClassGroup, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.ClassGroup, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.classes[id].Clone())
	}
	return result, nil
}

func (r *classRepository) Get(ctx context.Context, id string) (models.ClassGroup, error) {
	if err := ctx.Err(); err != nil {
		return models.ClassGroup{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	class, ok := r.classes[strings.TrimSpace(id)]
	if !ok {
		return models.ClassGroup{}, ErrNotFound
	}
	return class.Clone(), nil
}

func (r *classRepository) Create(ctx context.Context, class models.ClassGroup) (models.ClassGroup, error) {
	if err := ctx.Err(); err != nil {
		return models.ClassGroup{}, err
	}
	if strings.TrimSpace(class.ID) == "" {
		return models.ClassGroup{}, errors.New("class id is required")
	}

	stored := normalize(class.Clone())

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.classes[stored.ID]; exists {
		return models.ClassGroup{}, errors.New("class already exists")
	}
	r.classes[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	r.revision++

	return stored.Clone(), nil
}

func (r *classRepository) Update(ctx context.Context, id string, mutate ClassMutation) (models.ClassGroup, error) {
	if err := ctx.Err(); err != nil {
		return models.ClassGroup{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.classes[strings.TrimSpace(id)]
	if !ok {
		return models.ClassGroup{}, ErrNotFound
	}

	draft := current.Clone()
	if err := mutate(&draft); err != nil {
		return models.ClassGroup{}, err
	}
	draft.ID = current.ID
	draft = normalize(draft)

	r.classes[current.ID] = draft
	r.revision++

	return draft.Clone(), nil
}

func (r *classRepository) Delete(ctx context.Context, id string) (models.ClassGroup, error) {
	if err := ctx.Err(); err != nil {
		return models.ClassGroup{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.TrimSpace(id)
	class, ok := r.classes[key]
	if !ok {
		return models.ClassGroup{}, ErrNotFound
	}

	delete(r.classes, key)
	for idx, candidate := range r.order {
		if candidate == key {
			r.order = append(r.order[:idx], r.order[idx+1:]...)
			break
		}
	}
	r.revision++

	return class, nil
}

func (r *classRepository) Revision() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.revision
}

func normalize(class models.ClassGroup) models.ClassGroup {
	if class.Students == nil {
		class.Students = []models.Student{}
	}
	if class.Lessons == nil {
		class.Lessons = []models.Lesson{}
	}
	if class.Schedule == nil {
		class.Schedule = []models.ClassSchedule{}
	}
	if class.Grades == nil {
		class.Grades = models.GradeMap{}
	}
	return class
}
