package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/sirius-edu-api/internal/config"
	"github.com/noah-isme/sirius-edu-api/internal/handler"
	"github.com/noah-isme/sirius-edu-api/internal/middleware"
	"github.com/noah-isme/sirius-edu-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler         *handler.AuthHandler
	DashboardHandler    *handler.DashboardHandler
	ClassHandler        *handler.ClassHandler
	LessonHandler       *handler.LessonHandler
	GradebookHandler    *handler.GradebookHandler
	ConfirmationHandler *handler.ConfirmationHandler
	JWTMiddleware       fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api.Group("/auth", middleware.RateLimit("login", 20, time.Minute)))
	}

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.DashboardHandler != nil {
		deps.DashboardHandler.Register(api.Group("/dashboard", jwtMiddleware))
	}

	classes := api.Group("/classes", jwtMiddleware)
	if deps.ClassHandler != nil {
		deps.ClassHandler.Register(classes)
	}

	class := classes.Group("/:classID")
	if deps.LessonHandler != nil {
		deps.LessonHandler.Register(class)
	}
	if deps.GradebookHandler != nil {
		deps.GradebookHandler.Register(class)
	}

	if deps.ConfirmationHandler != nil {
		deps.ConfirmationHandler.Register(api.Group("/confirmations", jwtMiddleware))
	}
}
