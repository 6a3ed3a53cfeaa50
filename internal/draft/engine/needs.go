package engine

import "github.com/mcdev12/gridlock/internal/models"

// RosterCounts maps position -> number of players a team has already drafted.
type RosterCounts map[string]int

// CountRoster tallies the filled slots belonging to one team. The snapshot
// stored on the slot is authoritative; the catalog lookup map is only a
// fallback for drafts persisted before snapshots existed. Unknown positions
// are not counted.
func CountRoster(d *models.DraftSession, team int, byID map[string]models.Player) RosterCounts {
	counts := make(RosterCounts, len(models.TrackedPositions))
	for _, pos := range models.TrackedPositions {
		counts[pos] = 0
	}

	for i := range d.Picks {
		slot := &d.Picks[i]
		if slot.Team != team || slot.PlayerID == nil {
			continue
		}

		var pos string
		if slot.Player != nil {
			pos = slot.Player.Position
		} else if p, ok := byID[*slot.PlayerID]; ok {
			pos = p.Position
		}

		if _, tracked := counts[pos]; tracked {
			counts[pos]++
		}
	}

	return counts
}
