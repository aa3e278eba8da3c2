package ai

import (
	"context"
	"errors"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Supported suggestion providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// ErrMissingAPIKey is returned when a suggester is built without credentials.
var ErrMissingAPIKey = errors.New("ai api key is required")

var (
	aiDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sirius",
		Subsystem: "ai",
		Name:      "suggestion_duration_seconds",
		Help:      "Duration of AI lesson suggestion requests",
	}, []string{"model"})

	aiFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sirius",
		Subsystem: "ai",
		Name:      "suggestion_failures_total",
		Help:      "Number of AI lesson suggestion failures",
	}, []string{"model"})
)

// LessonPrompt carries the lesson context sent to the model.
type LessonPrompt struct {
	Subject    string
	Topic      string
	ClassLevel string
}

// LessonSuggester produces lesson content suggestions in Markdown.
type LessonSuggester interface {
	Suggest(ctx context.Context, prompt LessonPrompt) (string, error)
}

func systemPrompt() string {
	return "Atue como um assistente pedagógico especialista para professores do Colégio Estrela Sirius."
}

// BuildLessonPrompt renders the Portuguese instruction for one lesson.
func BuildLessonPrompt(prompt LessonPrompt) string {
	builder := strings.Builder{}
	builder.WriteString("Crie um plano de aula curto e direto para a aula abaixo.\n\n")
	builder.WriteString("Disciplina: ")
	builder.WriteString(prompt.Subject)
	builder.WriteString("\nNível: ")
	builder.WriteString(prompt.ClassLevel)
	builder.WriteString("\nTópico: ")
	builder.WriteString(prompt.Topic)
	builder.WriteString("\n\nA resposta deve conter:\n")
	builder.WriteString("1. Objetivo da aula (1 frase).\n")
	builder.WriteString("2. Tópicos principais a abordar (em lista).\n")
	builder.WriteString("3. Uma atividade prática rápida.\n\n")
	builder.WriteString("Formate a saída em Markdown simples, em português do Brasil.")
	return builder.String()
}
