package events

import (
	"time"
)

// Event types published on the draft subject space.
const (
	TypeDraftCreated   = "DraftCreated"
	TypePickMade       = "PickMade"
	TypeDraftCompleted = "DraftCompleted"
)

// DraftCreatedPayload is the payload for a DraftCreated event
type DraftCreatedPayload struct {
	DraftID    string    `json:"draft_id"`
	Sport      string    `json:"sport"`
	Format     string    `json:"format"`
	Teams      int       `json:"teams"`
	Rounds     int       `json:"rounds"`
	TotalPicks int       `json:"total_picks"`
	CreatedAt  time.Time `json:"created_at"`
}

// PickMadePayload is the payload for a PickMade event
type PickMadePayload struct {
	DraftID    string    `json:"draft_id"`
	Team       int       `json:"team"`
	Round      int       `json:"round"`
	Overall    int       `json:"overall"`
	PlayerID   string    `json:"player_id"`
	PlayerName string    `json:"player_name"`
	Position   string    `json:"position"`
	Auto       bool      `json:"auto"`
	MadeAt     time.Time `json:"made_at"`
}

// DraftCompletedPayload is the payload for a DraftCompleted event
type DraftCompletedPayload struct {
	DraftID     string    `json:"draft_id"`
	TotalPicks  int       `json:"total_picks"`
	CompletedAt time.Time `json:"completed_at"`
}
