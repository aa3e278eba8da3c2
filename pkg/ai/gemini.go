package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-1.5-flash"

// GeminiConfig defines configuration options for the Gemini suggester.
type GeminiConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int32
	Temperature float32
	Logger      zerolog.Logger
	Options     []option.ClientOption
}

// GeminiSuggester implements LessonSuggester against the Gemini generateContent API.
type GeminiSuggester struct {
	client *genai.Client
	model  *genai.GenerativeModel
	name   string
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewGeminiSuggester builds a Gemini-backed suggester. Close releases the client.
func NewGeminiSuggester(ctx context.Context, cfg GeminiConfig) (*GeminiSuggester, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 700
	}

	options := append([]option.ClientOption{option.WithAPIKey(cfg.APIKey)}, cfg.Options...)
	client, err := genai.NewClient(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SystemInstruction = genai.NewUserContent(genai.Text(systemPrompt()))
	model.SetMaxOutputTokens(cfg.MaxTokens)
	if cfg.Temperature > 0 {
		model.SetTemperature(cfg.Temperature)
	}

	return &GeminiSuggester{
		client: client,
		model:  model,
		name:   cfg.Model,
		tracer: otel.Tracer("github.com/noah-isme/sirius-edu-api/pkg/ai/gemini"),
		logger: cfg.Logger.With().Str("component", "gemini_suggester").Logger(),
	}, nil
}

// Suggest asks Gemini for a short lesson plan.
func (s *GeminiSuggester) Suggest(parent context.Context, prompt LessonPrompt) (string, error) {
	ctx, span := s.tracer.Start(parent, "gemini.suggest", trace.WithAttributes(
		attribute.String("model", s.name),
		attribute.String("lesson.subject", prompt.Subject),
	))
	defer span.End()

	start := time.Now()
	resp, err := s.model.GenerateContent(ctx, genai.Text(BuildLessonPrompt(prompt)))
	aiDuration.WithLabelValues(s.name).Observe(time.Since(start).Seconds())
	if err != nil {
		aiFailures.WithLabelValues(s.name).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Warn().Err(err).Msg("lesson suggestion request failed")
		return "", fmt.Errorf("gemini suggest: %w", err)
	}

	return responseText(resp), nil
}

// Close releases the underlying client.
func (s *GeminiSuggester) Close() error {
	return s.client.Close()
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var builder strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			builder.WriteString(string(text))
		}
	}
	return strings.TrimSpace(builder.String())
}
