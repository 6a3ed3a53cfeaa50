package engine

import (
	"testing"

	"github.com/mcdev12/gridlock/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func emptyCounts() RosterCounts {
	counts := make(RosterCounts)
	for _, pos := range models.TrackedPositions {
		counts[pos] = 0
	}
	return counts
}

func TestSelectBestSkipsTakenPlayers(t *testing.T) {
	w := DefaultWeights()
	candidates := []models.Player{
		{ID: "p1", Name: "Alpha", Position: models.PositionRB, Rank: intPtr(1)},
		{ID: "p2", Name: "Bravo", Position: models.PositionRB, Rank: intPtr(2)},
	}

	best := w.SelectBest(candidates, map[string]struct{}{"p1": {}}, emptyCounts(), 1)
	require.NotNil(t, best)
	assert.Equal(t, "p2", best.ID)
}

func TestSelectBestPrefersNeededPosition(t *testing.T) {
	// The team already met its WR target; a slightly worse-ranked RB should
	// win on the need term.
	w := DefaultWeights()
	candidates := []models.Player{
		{ID: "wr", Name: "Top Receiver", Position: models.PositionWR, Rank: intPtr(1)},
		{ID: "rb", Name: "Next Back", Position: models.PositionRB, Rank: intPtr(2)},
	}
	counts := emptyCounts()
	counts[models.PositionWR] = 2

	best := w.SelectBest(candidates, nil, counts, 1)
	require.NotNil(t, best)
	assert.Equal(t, "rb", best.ID)
}

func TestSelectBestBuriesKickersAndDefensesEarly(t *testing.T) {
	w := DefaultWeights()
	candidates := []models.Player{
		{ID: "k", Name: "Leg Man", Position: models.PositionK, Rank: intPtr(1)},
		{ID: "rb", Name: "Deep Back", Position: models.PositionRB, Rank: intPtr(500)},
	}

	// Through round 10 the penalty outweighs even a huge rank gap.
	best := w.SelectBest(candidates, nil, emptyCounts(), 10)
	require.NotNil(t, best)
	assert.Equal(t, "rb", best.ID)

	// After round 10 the kicker's rank carries again.
	counts := emptyCounts()
	counts[models.PositionRB] = 2
	best = w.SelectBest(candidates, nil, counts, 11)
	require.NotNil(t, best)
	assert.Equal(t, "k", best.ID)
}

func TestSelectBestKeepsUnrankedEligible(t *testing.T) {
	w := DefaultWeights()
	candidates := []models.Player{
		{ID: "ranked", Name: "Known Guy", Position: models.PositionWR, Rank: intPtr(3000)},
		{ID: "unranked", Name: "Camp Body", Position: models.PositionWR},
	}

	best := w.SelectBest(candidates, nil, emptyCounts(), 1)
	require.NotNil(t, best)
	assert.Equal(t, "ranked", best.ID, "any rank beats no rank")

	best = w.SelectBest(candidates, map[string]struct{}{"ranked": {}}, emptyCounts(), 1)
	require.NotNil(t, best)
	assert.Equal(t, "unranked", best.ID, "unranked players are deprioritized, not excluded")
}

func TestSelectBestTiebreakIsDeterministic(t *testing.T) {
	w := DefaultWeights()
	candidates := []models.Player{
		{ID: "short", Name: "Al Fox", Position: models.PositionWR, Rank: intPtr(10)},
		{ID: "long", Name: "Alexander Foxworthy", Position: models.PositionWR, Rank: intPtr(10)},
	}

	for i := 0; i < 5; i++ {
		best := w.SelectBest(candidates, nil, emptyCounts(), 1)
		require.NotNil(t, best)
		assert.Equal(t, "long", best.ID)
	}
}

func TestSelectBestExhausted(t *testing.T) {
	w := DefaultWeights()
	candidates := []models.Player{
		{ID: "p1", Name: "Only Guy", Position: models.PositionQB, Rank: intPtr(1)},
	}

	best := w.SelectBest(candidates, map[string]struct{}{"p1": {}}, emptyCounts(), 1)
	assert.Nil(t, best)

	best = w.SelectBest(nil, nil, emptyCounts(), 1)
	assert.Nil(t, best)
}
