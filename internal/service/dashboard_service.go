package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sirius-edu-api/internal/dto"
	"github.com/noah-isme/sirius-edu-api/internal/models"
	"github.com/noah-isme/sirius-edu-api/internal/observability"
	"github.com/noah-isme/sirius-edu-api/internal/repository"
)

// DashboardService produces aggregated numbers across every class.
type DashboardService interface {
	GetDashboard(ctx context.Context, query string) (dto.DashboardResponse, error)
}

type dashboardService struct {
	repo     repository.ClassRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

// NewDashboardService builds the dashboard aggregator. cache may be nil.
func NewDashboardService(repo repository.ClassRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		repo:     repo,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "dashboard_service").Logger(),
		now:      time.Now,
	}
}

// Greeting returns the time-of-day salutation shown on the dashboard.
func Greeting(at time.Time) string {
	switch hour := at.Hour(); {
	case hour < 12:
		return "Bom dia"
	case hour < 18:
		return "Boa tarde"
	default:
		return "Boa noite"
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context, query string) (dto.DashboardResponse, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	cacheKey := fmt.Sprintf("dashboard:%d:%s", s.repo.Revision(), query)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.DashboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				observability.DashboardCache().WithLabelValues("hit").Inc()
				response.Greeting = Greeting(s.now())
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
		observability.DashboardCache().WithLabelValues("miss").Inc()
	}

	classes, err := s.repo.List(ctx)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	response := buildDashboard(classes, query)

	if s.cache != nil {
		payload, err := json.Marshal(response)
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
			}
		}
	}

	response.Greeting = Greeting(s.now())
	return response, nil
}

func buildDashboard(classes []models.ClassGroup, query string) dto.DashboardResponse {
	totals := dto.DashboardTotals{Classes: len(classes)}
	cards := make([]dto.DashboardClassCard, 0, len(classes))

	for _, class := range classes {
		totals.Students += len(class.Students)
		totals.Lessons += len(class.Lessons)
		for _, scores := range class.Grades {
			for _, score := range scores {
				if strings.TrimSpace(score) != "" {
					totals.GradesFilled++
				}
			}
		}

		if query != "" &&
			!strings.Contains(strings.ToLower(class.Name), query) &&
			!strings.Contains(strings.ToLower(class.Subject), query) {
			continue
		}
		cards = append(cards, dto.DashboardClassCard{
			ID:           class.ID,
			Name:         class.Name,
			Subject:      class.Subject,
			StudentCount: len(class.Students),
			LessonCount:  len(class.Lessons),
		})
	}

	return dto.DashboardResponse{Totals: totals, Classes: cards}
}
