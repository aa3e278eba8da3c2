package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sirius-edu-api/internal/config"
	"github.com/noah-isme/sirius-edu-api/internal/database"
	"github.com/noah-isme/sirius-edu-api/internal/handler"
	"github.com/noah-isme/sirius-edu-api/internal/identity"
	"github.com/noah-isme/sirius-edu-api/internal/logger"
	"github.com/noah-isme/sirius-edu-api/internal/middleware"
	"github.com/noah-isme/sirius-edu-api/internal/repository"
	"github.com/noah-isme/sirius-edu-api/internal/router"
	"github.com/noah-isme/sirius-edu-api/internal/service"
	"github.com/noah-isme/sirius-edu-api/internal/validation"
	"github.com/noah-isme/sirius-edu-api/pkg/ai"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootstrap := logger.Setup("info", "json")
		bootstrap.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Setup(cfg.LogLevel, cfg.LogFormat).With().Str("service", cfg.AppName).Logger()

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("dashboard cache disabled")
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSURL, cfg.AppName, log)
		if err != nil {
			log.Warn().Err(err).Msg("domain events disabled")
			natsConn = nil
		} else {
			defer natsConn.Drain()
		}
	}

	suggester := newSuggester(cfg, log)
	if closer, ok := suggester.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	validate := validation.Default()
	ids := identity.UUIDGenerator{}
	registrations := identity.NewRandomRegistrations(registrationSeed(cfg))

	classRepo := repository.NewClassRepository()
	events := service.NewNATSEventPublisher(natsConn, cfg.EventSubject, log)
	confirmations := service.NewConfirmationService(ids, cfg.ConfirmationTTL, log)

	sessionService := service.NewSessionService(cfg.JWTSecret, cfg.SessionTTL, ids, validate, log)
	classService := service.NewClassService(classRepo, confirmations, events, ids, validate, log)
	rosterService := service.NewRosterService(classRepo, confirmations, events, ids, registrations, validate, log)
	planningService := service.NewLessonPlanService(classRepo, confirmations, events, ids, validate, log)
	gradebookService := service.NewGradebookService(classRepo, events, validate, log)
	suggestionService := service.NewSuggestionService(classRepo, suggester, log)
	dashboardService := service.NewDashboardService(classRepo, redisClient, cfg.DashboardCacheTTL, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		Immutable:    true,
	})

	middleware.Register(app, middleware.Config{
		Logger:    &log,
		AccessLog: cfg.AppEnv == "development",
	})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:         handler.NewAuthHandler(sessionService, log),
		DashboardHandler:    handler.NewDashboardHandler(dashboardService, log),
		ClassHandler:        handler.NewClassHandler(classService, rosterService, log),
		LessonHandler:       handler.NewLessonHandler(planningService, suggestionService, log),
		GradebookHandler:    handler.NewGradebookHandler(gradebookService, log),
		ConfirmationHandler: handler.NewConfirmationHandler(confirmations, log),
		JWTMiddleware:       middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		log.Info().Str("addr", cfg.HTTPAddress()).Msg("http server listening")
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	waitForShutdown(app, log)
}

func newSuggester(cfg config.Config, log zerolog.Logger) ai.LessonSuggester {
	if !cfg.AIEnabled() {
		log.Info().Str("provider", cfg.AIProvider).Msg("lesson suggestions disabled: no api key")
		return nil
	}

	var (
		suggester ai.LessonSuggester
		err       error
	)
	switch cfg.AIProvider {
	case ai.ProviderGemini:
		suggester, err = ai.NewGeminiSuggester(context.Background(), ai.GeminiConfig{
			APIKey: cfg.GeminiAPIKey,
			Model:  cfg.GeminiModel,
			Logger: log,
		})
	default:
		suggester, err = ai.NewOpenAISuggester(ai.OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
			Logger:  log,
		})
	}
	if err != nil {
		log.Warn().Err(err).Str("provider", cfg.AIProvider).Msg("lesson suggestions disabled")
		return nil
	}
	return suggester
}

func registrationSeed(cfg config.Config) uint64 {
	if cfg.RegistrationSeed != 0 {
		return cfg.RegistrationSeed
	}
	return uint64(time.Now().UnixNano())
}

func waitForShutdown(app *fiber.App, log zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	log.Info().Msg("server stopped")
}
