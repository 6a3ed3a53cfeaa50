package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mcdev12/gridlock/internal/models"
)

const sleeperBaseURL = "https://api.sleeper.app/v1"

// SleeperClient fetches the NFL player universe from the Sleeper API.
type SleeperClient struct {
	*BaseClient
}

func NewSleeperClient() *SleeperClient {
	return &SleeperClient{
		BaseClient: NewBaseClient(sleeperBaseURL),
	}
}

// sleeperPlayer is the subset of Sleeper's player document we care about.
type sleeperPlayer struct {
	PlayerID         string   `json:"player_id"`
	FullName         string   `json:"full_name"`
	FirstName        string   `json:"first_name"`
	LastName         string   `json:"last_name"`
	Position         string   `json:"position"`
	Team             string   `json:"team"`
	Status           string   `json:"status"`
	FantasyPositions []string `json:"fantasy_positions"`
	SearchRank       int      `json:"search_rank"`
}

// FetchNFLPlayers returns draftable NFL players: active, on a team, playing
// a tracked fantasy position, and carrying a usable name.
func (c *SleeperClient) FetchNFLPlayers(ctx context.Context) ([]models.Player, error) {
	body, err := c.Get(ctx, "/players/nfl")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch players: %w", err)
	}

	// Sleeper returns a single map keyed by player ID.
	var raw map[string]sleeperPlayer
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal players: %w", err)
	}

	tracked := make(map[string]struct{}, len(models.TrackedPositions))
	for _, pos := range models.TrackedPositions {
		tracked[pos] = struct{}{}
	}

	players := make([]models.Player, 0, 2048)
	for id, sp := range raw {
		p, ok := normalizeSleeperPlayer(id, sp, tracked)
		if !ok {
			continue
		}
		players = append(players, p)
	}
	return players, nil
}

func normalizeSleeperPlayer(id string, sp sleeperPlayer, tracked map[string]struct{}) (models.Player, bool) {
	if !strings.EqualFold(sp.Status, "active") {
		return models.Player{}, false
	}
	if sp.Team == "" {
		return models.Player{}, false
	}

	// First allowed fantasy position wins; the headline position can be
	// something untracked (e.g. FB) while fantasy_positions still fits.
	position := ""
	for _, fp := range sp.FantasyPositions {
		if _, ok := tracked[fp]; ok {
			position = fp
			break
		}
	}
	if position == "" {
		return models.Player{}, false
	}

	name := sp.FullName
	if name == "" {
		name = strings.TrimSpace(strings.Join(nonEmpty(sp.FirstName, sp.LastName), " "))
	}
	if name == "" {
		return models.Player{}, false
	}

	p := models.Player{
		ID:       id,
		Name:     name,
		Position: position,
		Team:     sp.Team,
	}
	// Sleeper's search_rank is format-agnostic; format-specific ranks can
	// overwrite it from a rankings feed later.
	if sp.SearchRank > 0 && sp.SearchRank < 9999999 {
		rank := sp.SearchRank
		p.Rank = &rank
	}
	return p, true
}

func nonEmpty(parts ...string) []string {
	out := parts[:0]
	for _, s := range parts {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
