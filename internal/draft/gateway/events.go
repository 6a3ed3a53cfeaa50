package gateway

import (
	"encoding/json"
	"time"
)

// EventType identifies the kind of draft event pushed to clients.
type EventType string

const (
	EventTypeDraftCreated   EventType = "DraftCreated"
	EventTypePickMade       EventType = "PickMade"
	EventTypeDraftCompleted EventType = "DraftCompleted"
)

// DraftEvent is the frame pushed to WebSocket clients.
type DraftEvent struct {
	ID        string          `json:"id"`
	DraftID   string          `json:"draft_id"`
	Type      EventType       `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// eventTypeFor maps a published event type string onto a client-facing
// EventType, returning false for types the gateway does not forward.
func eventTypeFor(eventType string) (EventType, bool) {
	switch eventType {
	case "DraftCreated":
		return EventTypeDraftCreated, true
	case "PickMade":
		return EventTypePickMade, true
	case "DraftCompleted":
		return EventTypeDraftCompleted, true
	default:
		return "", false
	}
}
