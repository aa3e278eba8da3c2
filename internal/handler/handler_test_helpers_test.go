package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sirius-edu-api/internal/config"
	"github.com/noah-isme/sirius-edu-api/internal/handler"
	"github.com/noah-isme/sirius-edu-api/internal/identity"
	"github.com/noah-isme/sirius-edu-api/internal/middleware"
	"github.com/noah-isme/sirius-edu-api/internal/repository"
	"github.com/noah-isme/sirius-edu-api/internal/router"
	"github.com/noah-isme/sirius-edu-api/internal/service"
	"github.com/noah-isme/sirius-edu-api/internal/validation"
	"github.com/noah-isme/sirius-edu-api/pkg/ai"
)

const testSecret = "test-secret"

type envelope struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    json.RawMessage        `json:"data"`
	Details map[string]interface{} `json:"details"`
}

type staticSuggester struct {
	output string
}

func (s staticSuggester) Suggest(context.Context, ai.LessonPrompt) (string, error) {
	return s.output, nil
}

type testStack struct {
	app  *fiber.App
	repo repository.ClassRepository
}

func newTestStack(t *testing.T, suggester ai.LessonSuggester) *testStack {
	t.Helper()
	return newTestStackWithConfig(t, suggester, fiber.Config{Immutable: true})
}

// newTestStackWithConfig builds the full API on an app created with appConfig.
func newTestStackWithConfig(t *testing.T, suggester ai.LessonSuggester, appConfig fiber.Config) *testStack {
	t.Helper()

	logger := zerolog.Nop()
	validate := validation.Default()
	ids := identity.NewSequence("id")
	repo := repository.NewClassRepository()
	events := service.NopEventPublisher()
	confirmations := service.NewConfirmationService(identity.NewSequence("token"), time.Minute, logger)
	cfg := config.Config{AppName: "Sirius Test", AppEnv: "test", JWTSecret: testSecret}

	app := fiber.New(appConfig)
	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:         handler.NewAuthHandler(service.NewSessionService(testSecret, time.Hour, ids, validate, logger), logger),
		DashboardHandler:    handler.NewDashboardHandler(service.NewDashboardService(repo, nil, time.Minute, logger), logger),
		ClassHandler:        handler.NewClassHandler(service.NewClassService(repo, confirmations, events, ids, validate, logger), service.NewRosterService(repo, confirmations, events, ids, &sequentialRegistrations{}, validate, logger), logger),
		LessonHandler:       handler.NewLessonHandler(service.NewLessonPlanService(repo, confirmations, events, ids, validate, logger), service.NewSuggestionService(repo, suggester, logger), logger),
		GradebookHandler:    handler.NewGradebookHandler(service.NewGradebookService(repo, events, validate, logger), logger),
		ConfirmationHandler: handler.NewConfirmationHandler(confirmations, logger),
		JWTMiddleware:       middleware.JWTProtected(testSecret),
	})

	return &testStack{app: app, repo: repo}
}

func (s *testStack) login(t *testing.T, name, role string) string {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"name": name, "role": role})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body envelope
	decodeResponse(t, resp, &body)
	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func (s *testStack) do(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// call performs the request, asserts the status and decodes data into target.
func (s *testStack) call(t *testing.T, method, path, token string, body interface{}, status int, target interface{}) envelope {
	t.Helper()
	resp := s.do(t, method, path, token, body)
	var result envelope
	decodeResponse(t, resp, &result)
	require.Equal(t, status, resp.StatusCode, result.Message)
	if target != nil {
		require.NoError(t, json.Unmarshal(result.Data, target))
	}
	return result
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(data, target))
}

// sequentialRegistrations hands out 10000, 10001, ... so tests can assert numbers.
type sequentialRegistrations struct {
	next atomic.Int64
}

func (s *sequentialRegistrations) NewRegistration() string {
	return strconv.FormatInt(10000+s.next.Add(1)-1, 10)
}
