package engine

import (
	"github.com/mcdev12/gridlock/internal/models"
)

// DraftView is the externally visible projection of a draft session.
type DraftView struct {
	DraftID      string     `json:"draft_id"`
	Sport        string     `json:"sport"`
	Format       string     `json:"format"`
	Year         int        `json:"year"`
	Teams        int        `json:"teams"`
	Rounds       int        `json:"rounds"`
	Picked       []string   `json:"picked"`
	CurrentIndex int        `json:"current_index"`
	CurrentRound int        `json:"current_round"`
	CurrentPick  int        `json:"current_pick"`
	CurrentTeam  *int       `json:"current_team,omitempty"`
	Completed    bool       `json:"completed"`
	Picks        []PickView `json:"picks"`
	Version      int        `json:"version"`
}

// PickView is one schedule slot with its resolved pick, if made.
type PickView struct {
	Overall  int                    `json:"overall"`
	Round    int                    `json:"round"`
	Team     int                    `json:"team"`
	PlayerID *string                `json:"player_id"`
	Player   *models.PlayerSnapshot `json:"player"`
}

// NewDraftView projects a session into its read model. Pure: no state change.
func NewDraftView(d *models.DraftSession) *DraftView {
	view := &DraftView{
		DraftID:      d.ID.String(),
		Sport:        d.Sport,
		Format:       string(d.Format),
		Year:         d.Year,
		Teams:        d.Teams,
		Rounds:       d.Rounds,
		Picked:       d.PickedIDs,
		CurrentIndex: d.CurrentIndex,
		Completed:    d.Completed(),
		Picks:        make([]PickView, len(d.Picks)),
		Version:      d.Version,
	}

	if slot := d.CurrentSlot(); slot != nil {
		team := slot.Team
		view.CurrentRound = slot.Round
		view.CurrentPick = (slot.Overall-1)%d.Teams + 1
		view.CurrentTeam = &team
	} else {
		// Completed drafts report the final round and pick position.
		view.CurrentRound = d.Rounds
		view.CurrentPick = d.Teams
	}

	for i := range d.Picks {
		slot := &d.Picks[i]
		view.Picks[i] = PickView{
			Overall:  slot.Overall,
			Round:    slot.Round,
			Team:     slot.Team,
			PlayerID: slot.PlayerID,
			Player:   slot.Player,
		}
	}

	return view
}
