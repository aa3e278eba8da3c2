package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/sirius-edu-api/internal/dto"
	"github.com/noah-isme/sirius-edu-api/internal/identity"
)

// DeletionKind names what a pending deletion removes.
type DeletionKind string

const (
	DeletionClass   DeletionKind = "class"
	DeletionStudent DeletionKind = "student"
	DeletionLesson  DeletionKind = "lesson"
)

const defaultConfirmationTTL = 5 * time.Minute

// PendingDeletion is a destructive action waiting for explicit confirmation.
type PendingDeletion struct {
	Token     string
	Kind      DeletionKind
	ClassID   string
	TargetID  string
	Prompt    string
	ExpiresAt time.Time
}

// Response converts the pending deletion into its API payload.
func (p PendingDeletion) Response() dto.PendingDeletionResponse {
	return dto.PendingDeletionResponse{
		Token:     p.Token,
		Kind:      string(p.Kind),
		ClassID:   p.ClassID,
		TargetID:  p.TargetID,
		Prompt:    p.Prompt,
		ExpiresAt: p.ExpiresAt,
	}
}

// DeletionHandler performs the mutation behind a confirmed deletion.
type DeletionHandler func(ctx context.Context, pending PendingDeletion) error

// ConfirmationService issues and redeems two-phase deletion tokens.
type ConfirmationService interface {
	Request(kind DeletionKind, classID, targetID, prompt string) PendingDeletion
	Confirm(ctx context.Context, token string) (dto.ConfirmationResponse, error)
	Handle(kind DeletionKind, handler DeletionHandler)
}

type confirmationService struct {
	mu       sync.Mutex
	pending  map[string]PendingDeletion
	handlers map[DeletionKind]DeletionHandler
	ids      identity.Generator
	ttl      time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

// NewConfirmationService constructs the token registry.
func NewConfirmationService(ids identity.Generator, ttl time.Duration, logger zerolog.Logger) ConfirmationService {
	if ttl <= 0 {
		ttl = defaultConfirmationTTL
	}
	return &confirmationService{
		pending:  make(map[string]PendingDeletion),
		handlers: make(map[DeletionKind]DeletionHandler),
		ids:      ids,
		ttl:      ttl,
		logger:   logger.With().Str("component", "confirmation_service").Logger(),
		now:      time.Now,
	}
}

func (s *confirmationService) Handle(kind DeletionKind, handler DeletionHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[kind] = handler
}

func (s *confirmationService) Request(kind DeletionKind, classID, targetID, prompt string) PendingDeletion {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.pruneLocked(now)

	pending := PendingDeletion{
		Token:     s.ids.NewID(),
		Kind:      kind,
		ClassID:   classID,
		TargetID:  targetID,
		Prompt:    prompt,
		ExpiresAt: now.Add(s.ttl),
	}
	s.pending[pending.Token] = pending

	return pending
}

func (s *confirmationService) Confirm(ctx context.Context, token string) (dto.ConfirmationResponse, error) {
	s.mu.Lock()
	pending, ok := s.pending[token]
	if ok {
		delete(s.pending, token)
	}
	handler := s.handlers[pending.Kind]
	now := s.now()
	s.mu.Unlock()

	if !ok || now.After(pending.ExpiresAt) {
		return dto.ConfirmationResponse{}, ErrConfirmationNotFound
	}
	if handler == nil {
		return dto.ConfirmationResponse{}, fmt.Errorf("no handler registered for %s deletions", pending.Kind)
	}

	if err := handler(ctx, pending); err != nil {
		return dto.ConfirmationResponse{}, err
	}

	s.logger.Info().
		Str("kind", string(pending.Kind)).
		Str("class_id", pending.ClassID).
		Str("target_id", pending.TargetID).
		Msg("deletion confirmed")

	return dto.ConfirmationResponse{
		Kind:     string(pending.Kind),
		ClassID:  pending.ClassID,
		TargetID: pending.TargetID,
	}, nil
}

func (s *confirmationService) pruneLocked(now time.Time) {
	for token, pending := range s.pending {
		if now.After(pending.ExpiresAt) {
			delete(s.pending, token)
		}
	}
}
