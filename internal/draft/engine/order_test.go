package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSnakeOrderReversesEvenRounds(t *testing.T) {
	picks, err := BuildSnakeOrder(4, 2)
	require.NoError(t, err)
	require.Len(t, picks, 8)

	gotTeams := make([]int, 0, len(picks))
	for _, p := range picks {
		gotTeams = append(gotTeams, p.Team)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 4, 3, 2, 1}, gotTeams)
}

func TestBuildSnakeOrderNumbering(t *testing.T) {
	picks, err := BuildSnakeOrder(12, 15)
	require.NoError(t, err)
	require.Len(t, picks, 180)

	for i, p := range picks {
		assert.Equal(t, i+1, p.Overall)
		assert.Equal(t, i/12+1, p.Round)
		assert.Nil(t, p.PlayerID)
	}
}

func TestBuildSnakeOrderOddRoundsRunForward(t *testing.T) {
	picks, err := BuildSnakeOrder(3, 3)
	require.NoError(t, err)

	gotTeams := make([]int, 0, len(picks))
	for _, p := range picks {
		gotTeams = append(gotTeams, p.Team)
	}
	assert.Equal(t, []int{1, 2, 3, 3, 2, 1, 1, 2, 3}, gotTeams)
}

func TestBuildSnakeOrderRejectsInvalidCounts(t *testing.T) {
	for _, tc := range []struct{ teams, rounds int }{
		{0, 5},
		{5, 0},
		{-1, -1},
	} {
		_, err := BuildSnakeOrder(tc.teams, tc.rounds)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	}
}
