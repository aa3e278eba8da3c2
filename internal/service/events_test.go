package service

import (
	"encoding/json"
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/test"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNATSEventPublisherWithoutConnectionIsNop(t *testing.T) {
	publisher := NewNATSEventPublisher(nil, "sirius.academic", zerolog.Nop())
	require.Equal(t, NopEventPublisher(), publisher)
	publisher.Publish(t.Context(), DomainEvent{Type: EventClassCreated})
}

func runNATS(t *testing.T) *nats.Conn {
	t.Helper()

	opts := natsserver.DefaultTestOptions
	opts.Port = -1
	srv := natsserver.RunServer(&opts)
	t.Cleanup(srv.Shutdown)

	conn, err := nats.Connect(srv.ClientURL())
	require.NoError(t, err)
	t.Cleanup(conn.Close)
	return conn
}

func TestNATSEventPublisherPublishesOnTypedSubject(t *testing.T) {
	conn := runNATS(t)
	sub, err := conn.SubscribeSync("sirius.academic.>")
	require.NoError(t, err)
	require.NoError(t, conn.Flush())

	publisher := NewNATSEventPublisher(conn, "sirius:academic", zerolog.Nop())
	publisher.Publish(t.Context(), DomainEvent{
		Type:     EventClassCreated,
		ClassID:  "class-1",
		ActorID:  "teacher-1",
		Metadata: map[string]interface{}{"name": "7A"},
	})

	msg, err := sub.NextMsg(time.Second)
	require.NoError(t, err)
	require.Equal(t, "sirius.academic.classes.created", msg.Subject)

	var event DomainEvent
	require.NoError(t, json.Unmarshal(msg.Data, &event))
	require.Equal(t, EventClassCreated, event.Type)
	require.Equal(t, "class-1", event.ClassID)
	require.Equal(t, "teacher-1", event.ActorID)
	require.Equal(t, "7A", event.Metadata["name"])
	require.False(t, event.OccurredAt.IsZero())
}

func TestNATSEventPublisherKeepsOccurredAt(t *testing.T) {
	conn := runNATS(t)
	sub, err := conn.SubscribeSync("sirius.>")
	require.NoError(t, err)
	require.NoError(t, conn.Flush())

	occurred := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	publisher := NewNATSEventPublisher(conn, ".", zerolog.Nop())
	publisher.Publish(t.Context(), DomainEvent{Type: EventGradesBulkFilled, ClassID: "class-2", OccurredAt: occurred})

	msg, err := sub.NextMsg(time.Second)
	require.NoError(t, err)
	require.Equal(t, "sirius.grades.bulk_filled", msg.Subject)

	var event DomainEvent
	require.NoError(t, json.Unmarshal(msg.Data, &event))
	require.True(t, occurred.Equal(event.OccurredAt))
	require.Nil(t, event.Metadata)
}
