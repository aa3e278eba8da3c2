package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/sirius-edu-api/internal/config"
	"github.com/noah-isme/sirius-edu-api/internal/utils"
)

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status      string          `json:"status"`
	Timestamp   time.Time       `json:"timestamp"`
	Service     string          `json:"service"`
	Environment string          `json:"environment"`
	Features    map[string]bool `json:"features"`
}

// HealthCheck returns a handler that reports application health and optional integrations.
func HealthCheck(cfg config.Config) fiber.Handler {
	features := map[string]bool{
		"ai_suggestions":  cfg.AIEnabled(),
		"dashboard_cache": cfg.RedisURL != "",
		"domain_events":   cfg.NATSURL != "",
	}

	return func(c *fiber.Ctx) error {
		payload := HealthResponse{
			Status:      "ok",
			Timestamp:   time.Now().UTC(),
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
			Features:    features,
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}
