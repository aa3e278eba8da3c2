package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sirius-edu-api/internal/dto"
	"github.com/noah-isme/sirius-edu-api/internal/models"
	"github.com/noah-isme/sirius-edu-api/pkg/ai"
)

type fakeSuggester struct {
	mu      sync.Mutex
	output  string
	err     error
	prompts []ai.LessonPrompt
	block   chan struct{}
	started chan struct{}
}

func (f *fakeSuggester) Suggest(ctx context.Context, prompt ai.LessonPrompt) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	return f.output, f.err
}

func lessonFixture(t *testing.T, topics string) (*serviceFixture, dto.ClassDetailResponse, []models.Lesson) {
	t.Helper()
	f := newServiceFixture(t)
	class := f.createClass(t)
	savePlanning(t, f, class.ID, topics, dto.ScheduleEntry{DayOfWeek: 1, LessonsCount: 2})
	generated, err := f.planning.GenerateLessons(context.Background(), Actor{}, class.ID, dto.GenerateLessonsRequest{StartDate: "2024-03-04", EndDate: "2024-03-04"})
	require.NoError(t, err)
	return f, class, generated.Lessons
}

func TestSuggestReplacesLessonContent(t *testing.T) {
	f, class, lessons := lessonFixture(t, "Frações")
	suggester := &fakeSuggester{output: "<p>**Objetivo:** somar frações</p>"}
	svc := NewSuggestionService(f.repo, suggester, testLogger())

	updated, err := svc.Suggest(context.Background(), class.ID, lessons[0].ID)
	require.NoError(t, err)
	require.Equal(t, "**Objetivo:** somar frações", updated.Content)
	require.Equal(t, []ai.LessonPrompt{{Subject: "Matemática", Topic: "Frações", ClassLevel: class.Name}}, suggester.prompts)

	listed, err := f.planning.ListLessons(context.Background(), class.ID)
	require.NoError(t, err)
	require.Equal(t, updated.Content, listed.Lessons[0].Content)
}

func TestSuggestFixedMessages(t *testing.T) {
	cases := []struct {
		name      string
		suggester ai.LessonSuggester
		expected  string
	}{
		{name: "missing key", suggester: nil, expected: SuggestionMissingKey},
		{name: "failure", suggester: &fakeSuggester{err: errors.New("timeout")}, expected: SuggestionFailed},
		{name: "empty output", suggester: &fakeSuggester{output: "  <br/> "}, expected: SuggestionEmpty},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, class, lessons := lessonFixture(t, "Frações")
			svc := NewSuggestionService(f.repo, tc.suggester, testLogger())

			updated, err := svc.Suggest(context.Background(), class.ID, lessons[0].ID)
			require.NoError(t, err)
			require.Equal(t, tc.expected, updated.Content)
		})
	}
}

func TestSuggestRequiresTopic(t *testing.T) {
	f, class, lessons := lessonFixture(t, "Frações")
	svc := NewSuggestionService(f.repo, &fakeSuggester{output: "x"}, testLogger())

	require.Equal(t, "", lessons[1].Topic, "second slot runs out of topics")
	_, err := svc.Suggest(context.Background(), class.ID, lessons[1].ID)
	require.ErrorIs(t, err, ErrLessonWithoutTopic)

	_, err = svc.Suggest(context.Background(), class.ID, "missing")
	require.ErrorIs(t, err, ErrLessonNotFound)
}

func TestSuggestRejectsConcurrentRequestForSameLesson(t *testing.T) {
	f, class, lessons := lessonFixture(t, "Frações\nDecimais")
	suggester := &fakeSuggester{output: "ok", block: make(chan struct{}), started: make(chan struct{}, 2)}
	svc := NewSuggestionService(f.repo, suggester, testLogger())

	done := make(chan error, 1)
	go func() {
		_, err := svc.Suggest(context.Background(), class.ID, lessons[0].ID)
		done <- err
	}()
	<-suggester.started

	_, err := svc.Suggest(context.Background(), class.ID, lessons[0].ID)
	require.ErrorIs(t, err, ErrSuggestionBusy)

	other := make(chan error, 1)
	go func() {
		_, err := svc.Suggest(context.Background(), class.ID, lessons[1].ID)
		other <- err
	}()
	<-suggester.started

	close(suggester.block)
	require.NoError(t, <-done)
	require.NoError(t, <-other)

	_, err = svc.Suggest(context.Background(), class.ID, lessons[0].ID)
	require.NoError(t, err, "busy flag must be released")
}
