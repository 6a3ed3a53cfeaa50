package models

// Fantasy-relevant positions. Catalog rows outside this set are ignored.
const (
	PositionQB  = "QB"
	PositionRB  = "RB"
	PositionWR  = "WR"
	PositionTE  = "TE"
	PositionK   = "K"
	PositionDEF = "DEF"
)

// TrackedPositions lists the positions the engine tallies, in display order.
var TrackedPositions = []string{
	PositionQB, PositionRB, PositionWR, PositionTE, PositionK, PositionDEF,
}

// Player is a catalog entry with rank/adp/tier already resolved for one
// scoring format. The catalog owns players; the engine never mutates them.
// Rank, ADP and Tier are nil when the provider has no value for the format.
type Player struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Position string   `json:"position"`
	Team     string   `json:"team"`
	Rank     *int     `json:"rank"`
	ADP      *float64 `json:"adp"`
	Tier     *int     `json:"tier"`
}

// PlayerSnapshot is the catalog state captured onto a pick slot at pick
// time, so a stored draft stays self-describing if the catalog changes.
type PlayerSnapshot struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Position string   `json:"position"`
	Team     string   `json:"team"`
	Rank     *int     `json:"rank"`
	ADP      *float64 `json:"adp"`
	Tier     *int     `json:"tier"`
}

// SnapshotOf copies the display fields of a catalog entry.
func SnapshotOf(p Player) *PlayerSnapshot {
	return &PlayerSnapshot{
		ID:       p.ID,
		Name:     p.Name,
		Position: p.Position,
		Team:     p.Team,
		Rank:     p.Rank,
		ADP:      p.ADP,
		Tier:     p.Tier,
	}
}
