package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sirius-edu-api/internal/dto"
	"github.com/noah-isme/sirius-edu-api/internal/identity"
	"github.com/noah-isme/sirius-edu-api/internal/models"
)

const defaultSessionTTL = 12 * time.Hour

// ErrMissingSigningSecret indicates the session service was built without a JWT secret.
var ErrMissingSigningSecret = errors.New("jwt secret is required")

// SessionService establishes who is using the API. There is no credential check.
type SessionService interface {
	Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error)
}

type sessionService struct {
	secret    []byte
	ttl       time.Duration
	ids       identity.Generator
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewSessionService constructs the login service signing HS256 tokens with secret.
func NewSessionService(secret string, ttl time.Duration, ids identity.Generator, validate *validator.Validate, logger zerolog.Logger) SessionService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &sessionService{
		secret:    []byte(secret),
		ttl:       ttl,
		ids:       ids,
		validator: validate,
		logger:    logger.With().Str("component", "session_service").Logger(),
		now:       time.Now,
	}
}

func (s *sessionService) Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error) {
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Role = strings.ToUpper(strings.TrimSpace(payload.Role))
	if err := s.validator.Struct(payload); err != nil {
		return dto.LoginResponse{}, err
	}
	if len(s.secret) == 0 {
		return dto.LoginResponse{}, ErrMissingSigningSecret
	}

	user := models.User{
		ID:   s.ids.NewID(),
		Name: payload.Name,
		Role: models.Role(payload.Role),
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID,
		"name": user.Name,
		"role": string(user.Role),
		"iat":  issuedAt.Unix(),
		"exp":  expiresAt.Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return dto.LoginResponse{}, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("session started")

	return dto.LoginResponse{
		Token:     signed,
		ExpiresAt: expiresAt.UTC(),
		User:      user,
		ReadOnly:  user.Role.ReadOnly(),
	}, nil
}
