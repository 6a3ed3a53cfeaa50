package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/gridlock/internal/draft/publish"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// EventConsumer subscribes to the draft event subjects on NATS and relays
// them to WebSocket clients via the connection manager.
type EventConsumer struct {
	connectionManager *ConnectionManager
	nc                *nats.Conn
	subject           string
	sub               *nats.Subscription
}

// NewEventConsumer creates a consumer on an existing NATS connection.
// subjectPrefix defaults to "draft.events".
func NewEventConsumer(cm *ConnectionManager, nc *nats.Conn, subjectPrefix string) *EventConsumer {
	if subjectPrefix == "" {
		subjectPrefix = "draft.events"
	}
	return &EventConsumer{
		connectionManager: cm,
		nc:                nc,
		subject:           subjectPrefix + ".>",
	}
}

// Start subscribes and relays until ctx is cancelled.
func (ec *EventConsumer) Start(ctx context.Context) error {
	sub, err := ec.nc.Subscribe(ec.subject, func(msg *nats.Msg) {
		if err := ec.processMessage(msg.Data); err != nil {
			log.Error().
				Err(err).
				Str("subject", msg.Subject).
				Msg("failed to process event")
		}
	})
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", ec.subject, err)
	}
	ec.sub = sub

	log.Info().Str("subject", ec.subject).Msg("event consumer started")

	<-ctx.Done()
	return ec.Stop()
}

// Stop unsubscribes from the event subjects.
func (ec *EventConsumer) Stop() error {
	if ec.sub == nil {
		return nil
	}
	if err := ec.sub.Unsubscribe(); err != nil {
		return fmt.Errorf("unsubscribe: %w", err)
	}
	ec.sub = nil
	log.Info().Msg("event consumer stopped")
	return nil
}

func (ec *EventConsumer) processMessage(data []byte) error {
	var envelope publish.Envelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("unmarshal event envelope: %w", err)
	}

	draftID, err := uuid.Parse(envelope.DraftID)
	if err != nil {
		return fmt.Errorf("parse draft ID: %w", err)
	}

	eventType, ok := eventTypeFor(envelope.EventType)
	if !ok {
		log.Debug().Str("event_type", envelope.EventType).Msg("skipping unknown event type")
		return nil
	}

	ec.connectionManager.BroadcastToDraft(draftID, &DraftEvent{
		ID:        envelope.EventID,
		DraftID:   envelope.DraftID,
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      envelope.Payload,
	})
	return nil
}
