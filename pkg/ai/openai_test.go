package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNewOpenAISuggesterRequiresKey(t *testing.T) {
	_, err := NewOpenAISuggester(OpenAIConfig{APIKey: "  "})
	require.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestBuildLessonPromptIncludesContext(t *testing.T) {
	prompt := BuildLessonPrompt(LessonPrompt{Subject: "Matemática", Topic: "Frações", ClassLevel: "6º Ano - Fundamental II - Turma A"})
	require.Contains(t, prompt, "Disciplina: Matemática")
	require.Contains(t, prompt, "Tópico: Frações")
	require.Contains(t, prompt, "Nível: 6º Ano - Fundamental II - Turma A")
	require.Contains(t, prompt, "Markdown")
}

func TestOpenAISuggesterSuggest(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   "gpt-4o-mini",
			"choices": []map[string]interface{}{
				{"index": 0, "finish_reason": "stop", "message": map[string]string{"role": "assistant", "content": "  **Objetivo:** entender frações\n"}},
			},
		})
	}))
	defer server.Close()

	suggester, err := NewOpenAISuggester(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL, Logger: zerolog.Nop()})
	require.NoError(t, err)

	content, err := suggester.Suggest(context.Background(), LessonPrompt{Subject: "Matemática", Topic: "Frações"})
	require.NoError(t, err)
	require.Equal(t, "**Objetivo:** entender frações", content)
	require.Equal(t, "gpt-4o-mini", captured["model"])
	require.Len(t, captured["messages"], 2)
}

func TestOpenAISuggesterReturnsErrorOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	}))
	defer server.Close()

	suggester, err := NewOpenAISuggester(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL, Logger: zerolog.Nop()})
	require.NoError(t, err)

	_, err = suggester.Suggest(context.Background(), LessonPrompt{Topic: "Frações"})
	require.Error(t, err)
}
