package engine

import (
	"fmt"

	"github.com/mcdev12/gridlock/internal/models"
)

// BuildSnakeOrder generates the full pick schedule for a draft: odd rounds
// run team 1..N, even rounds run N..1. Overall numbers are 1-based and
// strictly increasing. Callers clamp teams/rounds to their accepted bounds
// before invoking; the generator only rejects values it cannot enumerate.
func BuildSnakeOrder(teams, rounds int) ([]models.PickSlot, error) {
	if teams < 1 || rounds < 1 {
		return nil, fmt.Errorf("%w: %d teams, %d rounds", ErrInvalidConfig, teams, rounds)
	}

	picks := make([]models.PickSlot, 0, teams*rounds)
	overall := 1

	for round := 1; round <= rounds; round++ {
		forward := round%2 == 1
		for i := 0; i < teams; i++ {
			team := i + 1
			if !forward {
				team = teams - i
			}
			picks = append(picks, models.PickSlot{
				Overall: overall,
				Round:   round,
				Team:    team,
			})
			overall++
		}
	}

	return picks, nil
}
