package service

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/noah-isme/sirius-edu-api/internal/models"
	"github.com/noah-isme/sirius-edu-api/internal/repository"
	"github.com/noah-isme/sirius-edu-api/pkg/ai"
)

// Fixed lesson content written when the suggestion cannot be produced.
const (
	SuggestionMissingKey = "Erro: Chave de API não configurada. Por favor, configure a API_KEY."
	SuggestionFailed     = "Houve um erro ao conectar com a Inteligência Artificial."
	SuggestionEmpty      = "Não foi possível gerar sugestões no momento."
)

// SuggestionService fills a lesson's content with AI generated material.
type SuggestionService interface {
	Suggest(ctx context.Context, classID, lessonID string) (models.Lesson, error)
}

type suggestionService struct {
	repo      repository.ClassRepository
	suggester ai.LessonSuggester
	logger    zerolog.Logger

	mu   sync.Mutex
	busy map[string]struct{}
}

// NewSuggestionService constructs the service. A nil suggester means no API key is configured.
func NewSuggestionService(repo repository.ClassRepository, suggester ai.LessonSuggester, logger zerolog.Logger) SuggestionService {
	return &suggestionService{
		repo:      repo,
		suggester: suggester,
		logger:    logger.With().Str("component", "suggestion_service").Logger(),
		busy:      make(map[string]struct{}),
	}
}

func (s *suggestionService) Suggest(ctx context.Context, classID, lessonID string) (models.Lesson, error) {
	class, err := s.repo.Get(ctx, classID)
	if err != nil {
		return models.Lesson{}, mapClassError(err)
	}
	lesson, ok := lessonByID(class.Lessons, lessonID)
	if !ok {
		return models.Lesson{}, ErrLessonNotFound
	}
	if strings.TrimSpace(lesson.Topic) == "" {
		return models.Lesson{}, ErrLessonWithoutTopic
	}

	if !s.acquire(lesson.ID) {
		return models.Lesson{}, ErrSuggestionBusy
	}
	defer s.release(lesson.ID)

	content := s.generate(ctx, ai.LessonPrompt{
		Subject:    class.Subject,
		Topic:      lesson.Topic,
		ClassLevel: class.Name,
	})

	var updated models.Lesson
	_, err = s.repo.Update(ctx, classID, func(class *models.ClassGroup) error {
		idx := findLesson(class.Lessons, lessonID)
		if idx < 0 {
			return ErrLessonNotFound
		}
		class.Lessons[idx].Content = content
		updated = class.Lessons[idx]
		return nil
	})
	if err != nil {
		return models.Lesson{}, mapClassError(err)
	}

	return updated, nil
}

// generate makes a single attempt and always yields displayable content.
func (s *suggestionService) generate(ctx context.Context, prompt ai.LessonPrompt) string {
	if s.suggester == nil {
		return SuggestionMissingKey
	}

	output, err := s.suggester.Suggest(ctx, prompt)
	if err != nil {
		s.logger.Error().Err(err).Str("topic", prompt.Topic).Msg("lesson suggestion failed")
		return SuggestionFailed
	}

	output = plainText(output)
	if output == "" {
		return SuggestionEmpty
	}
	return output
}

func (s *suggestionService) acquire(lessonID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, running := s.busy[lessonID]; running {
		return false
	}
	s.busy[lessonID] = struct{}{}
	return true
}

func (s *suggestionService) release(lessonID string) {
	s.mu.Lock()
	delete(s.busy, lessonID)
	s.mu.Unlock()
}
