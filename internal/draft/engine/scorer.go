package engine

import (
	"math"

	"github.com/mcdev12/gridlock/internal/models"
)

// Weights tunes the autopick scorer. The literal values are tuning
// parameters; the invariant that matters is the ordering of magnitudes:
// the late-position penalty dominates the need term, the need term
// dominates small rank differences, and the tiebreak is smallest of all.
type Weights struct {
	// BaseRankCeiling turns a rank into a desirability score
	// (ceiling - rank). Unranked players score zero for this term.
	BaseRankCeiling int `yaml:"base_rank_ceiling"`

	// NeedMultiplier scales the roster-need term.
	NeedMultiplier float64 `yaml:"need_multiplier"`

	// EarlyRoundMax is the last round the early boost applies to.
	EarlyRoundMax int `yaml:"early_round_max"`

	// EarlyBoost weights per-position need during the early rounds.
	// After EarlyRoundMax every position weighs 1.
	EarlyBoost map[string]float64 `yaml:"early_boost"`

	// Targets is the end-of-draft roster target per position.
	Targets map[string]int `yaml:"targets"`

	// LatePenalty is added to LatePositions candidates while the round is
	// at or below LatePenaltyMaxRound. Negative, large enough to bury them
	// behind any other position but not enough to exclude them outright.
	LatePenalty         float64  `yaml:"late_penalty"`
	LatePenaltyMaxRound int      `yaml:"late_penalty_max_round"`
	LatePositions       []string `yaml:"late_positions"`
}

// DefaultWeights returns the stock scorer tuning.
func DefaultWeights() Weights {
	return Weights{
		BaseRankCeiling: 100000,
		NeedMultiplier:  500,
		EarlyRoundMax:   6,
		EarlyBoost: map[string]float64{
			models.PositionRB:  2,
			models.PositionWR:  2,
			models.PositionQB:  0.7,
			models.PositionTE:  0.7,
			models.PositionK:   0.1,
			models.PositionDEF: 0.1,
		},
		Targets: map[string]int{
			models.PositionQB:  1,
			models.PositionRB:  2,
			models.PositionWR:  2,
			models.PositionTE:  1,
			models.PositionK:   1,
			models.PositionDEF: 1,
		},
		LatePenalty:         -20000,
		LatePenaltyMaxRound: 10,
		LatePositions:       []string{models.PositionK, models.PositionDEF},
	}
}

// needScore computes the roster-need factor for one position: how many
// players short of target the team still is, weighted by round strategy.
func (w Weights) needScore(counts RosterCounts, pos string, round int) float64 {
	missing := w.Targets[pos] - counts[pos]
	if missing < 0 {
		missing = 0
	}

	boost := 1.0
	if round <= w.EarlyRoundMax {
		if b, ok := w.EarlyBoost[pos]; ok {
			boost = b
		}
	}

	return float64(missing) * boost
}

func (w Weights) isLatePosition(pos string) bool {
	for _, p := range w.LatePositions {
		if p == pos {
			return true
		}
	}
	return false
}

// SelectBest returns the highest-scoring candidate that is not already
// taken, or nil when none is eligible. Candidates must arrive in a stable
// order (the catalog lists rank-ascending): ties keep the first seen, so
// iteration order is part of the contract. Greedy single-lookahead by
// design, not a roster optimizer.
func (w Weights) SelectBest(candidates []models.Player, taken map[string]struct{}, counts RosterCounts, round int) *models.Player {
	var best *models.Player
	bestScore := math.Inf(-1)

	for i := range candidates {
		p := &candidates[i]
		if p.ID == "" {
			continue
		}
		if _, picked := taken[p.ID]; picked {
			continue
		}

		// Rank dominates; lower rank scores higher. Unranked players stay
		// eligible but fall to the bottom.
		base := 0.0
		if p.Rank != nil {
			base = float64(w.BaseRankCeiling - *p.Rank)
		}

		needs := w.needScore(counts, p.Position, round) * w.NeedMultiplier

		penalty := 0.0
		if round <= w.LatePenaltyMaxRound && w.isLatePosition(p.Position) {
			penalty = w.LatePenalty
		}

		// Deterministic tiebreak keeps the total order stable.
		tiebreak := float64(len(p.Name))

		score := base + needs + penalty + tiebreak
		if score > bestScore {
			bestScore = score
			best = p
		}
	}

	return best
}
