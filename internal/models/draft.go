package models

import (
	"time"

	"github.com/google/uuid"
)

// ScoringFormat selects which rank/adp/tier sub-mapping of a player applies.
type ScoringFormat string

const (
	FormatStandard ScoringFormat = "standard"
	FormatPPR      ScoringFormat = "ppr"
	FormatHalfPPR  ScoringFormat = "half_ppr"
)

// DraftStatus defines the lifecycle state of a draft session.
type DraftStatus string

const (
	DraftStatusCreated    DraftStatus = "CREATED"
	DraftStatusInProgress DraftStatus = "IN_PROGRESS"
	DraftStatusCompleted  DraftStatus = "COMPLETED"
)

// DraftSettings holds optional per-draft configuration, stored as nullable JSONB.
type DraftSettings struct {
	TimePerPickSec int `json:"time_per_pick_sec,omitempty"`
	// Extend with more settings as needed
}

// PickSlot is one scheduled turn for a team. Overall is 1-based and
// monotonically increasing across the whole draft. PlayerID and Player are
// nil until the pick is made and immutable afterwards.
type PickSlot struct {
	Overall  int             `json:"overall"`
	Round    int             `json:"round"`
	Team     int             `json:"team"`
	PlayerID *string         `json:"player_id,omitempty"`
	Player   *PlayerSnapshot `json:"player,omitempty"`
}

// DraftSession is the unit of consistency for a draft. PickedIDs is ordered
// most-recent-first; CurrentIndex is the index of the next open slot and
// equals len(PickedIDs). Version guards concurrent writers.
type DraftSession struct {
	ID           uuid.UUID      `json:"id"`
	Sport        string         `json:"sport"`
	Format       ScoringFormat  `json:"format"`
	Year         int            `json:"year"`
	Teams        int            `json:"teams"`
	Rounds       int            `json:"rounds"`
	Picks        []PickSlot     `json:"picks"`
	PickedIDs    []string       `json:"picked"`
	CurrentIndex int            `json:"current_index"`
	Settings     *DraftSettings `json:"settings,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	Version      int            `json:"version"`
}

// Completed reports whether every slot has been filled.
func (d *DraftSession) Completed() bool {
	return d.CurrentIndex >= len(d.Picks)
}

// Status derives the lifecycle state from the cursor position.
func (d *DraftSession) Status() DraftStatus {
	switch {
	case d.CurrentIndex == 0:
		return DraftStatusCreated
	case d.Completed():
		return DraftStatusCompleted
	default:
		return DraftStatusInProgress
	}
}

// CurrentSlot returns the next open slot, or nil when the draft is complete.
func (d *DraftSession) CurrentSlot() *PickSlot {
	if d.Completed() {
		return nil
	}
	return &d.Picks[d.CurrentIndex]
}
