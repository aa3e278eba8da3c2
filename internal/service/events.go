package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// Domain event types.
const (
	EventClassCreated     = "classes.created"
	EventClassDeleted     = "classes.deleted"
	EventStudentsAdded    = "students.added"
	EventStudentRemoved   = "students.removed"
	EventLessonsGenerated = "lessons.generated"
	EventGradesBulkFilled = "grades.bulk_filled"
)

// DomainEvent describes a state change that other processes may want to observe.
type DomainEvent struct {
	Type       string                 `json:"type"`
	ClassID    string                 `json:"class_id"`
	ActorID    string                 `json:"actor_id,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// EventPublisher broadcasts domain events. Implementations must not block callers on failure.
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent)
}

type nopEventPublisher struct{}

func (nopEventPublisher) Publish(context.Context, DomainEvent) {}

// NopEventPublisher discards every event.
func NopEventPublisher() EventPublisher {
	return nopEventPublisher{}
}

type natsEventPublisher struct {
	conn    *nats.Conn
	subject string
	logger  zerolog.Logger
	now     func() time.Time
}

// NewNATSEventPublisher publishes events on "<subjectBase>.<event type>".
// A nil connection yields a publisher that drops everything.
func NewNATSEventPublisher(conn *nats.Conn, subjectBase string, logger zerolog.Logger) EventPublisher {
	if conn == nil {
		return NopEventPublisher()
	}
	subject := strings.Trim(strings.ReplaceAll(subjectBase, ":", "."), ".")
	if subject == "" {
		subject = "sirius"
	}
	return &natsEventPublisher{
		conn:    conn,
		subject: subject,
		logger:  logger.With().Str("component", "event_publisher").Logger(),
		now:     time.Now,
	}
}

func (p *natsEventPublisher) Publish(_ context.Context, event DomainEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = p.now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Warn().Err(err).Str("event", event.Type).Msg("failed to encode domain event")
		return
	}

	if err := p.conn.Publish(p.subject+"."+event.Type, payload); err != nil {
		p.logger.Warn().Err(err).Str("event", event.Type).Msg("failed to publish domain event")
	}
}
