package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// Publisher delivers draft domain events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, eventType string, draftID uuid.UUID, payload any) error
}

// Envelope is the wire format shared with event consumers.
type Envelope struct {
	EventID   string          `json:"eventId"`
	EventType string          `json:"eventType"`
	DraftID   string          `json:"draftId"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

func newEnvelope(eventType string, draftID uuid.UUID, payload any) ([]byte, string, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	eventID := uuid.New().String()
	envelope := Envelope{
		EventID:   eventID,
		EventType: eventType,
		DraftID:   draftID.String(),
		Timestamp: time.Now().UTC(),
		Payload:   payloadBytes,
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal envelope: %w", err)
	}
	return data, eventID, nil
}

// LogPublisher logs events instead of delivering them. Used in dev mode
// when no NATS server is configured.
type LogPublisher struct{}

// NewLogPublisher creates a log-only publisher.
func NewLogPublisher() *LogPublisher {
	return &LogPublisher{}
}

func (p *LogPublisher) Publish(ctx context.Context, eventType string, draftID uuid.UUID, payload any) error {
	log.Info().
		Str("event_type", eventType).
		Str("draft_id", draftID.String()).
		Msg("publishing event")
	return nil
}

// NATSPublisher publishes events to NATS under <prefix>.<eventType>.
type NATSPublisher struct {
	nc     *nats.Conn
	prefix string
}

// NewNATSPublisher creates a publisher on an existing NATS connection.
func NewNATSPublisher(nc *nats.Conn, prefix string) *NATSPublisher {
	if prefix == "" {
		prefix = "draft.events"
	}
	return &NATSPublisher{nc: nc, prefix: prefix}
}

func (p *NATSPublisher) Publish(ctx context.Context, eventType string, draftID uuid.UUID, payload any) error {
	data, eventID, err := newEnvelope(eventType, draftID, payload)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("%s.%s", p.prefix, eventType)
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to NATS: %w", err)
	}

	log.Debug().
		Str("subject", subject).
		Str("event_id", eventID).
		Str("draft_id", draftID.String()).
		Msg("event published")
	return nil
}
