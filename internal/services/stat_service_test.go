package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apython1998/ultistats/internal/models"
)

func TestStatService_RecordAndTotals(t *testing.T) {
	db := setupTestDB(t)
	games := NewGameService(db)
	players := NewPlayerService(db)
	stats := NewStatService(db)

	game, err := games.CreateGame(models.Game{OpponentTeamName: "Rival"})
	require.NoError(t, err)
	player, err := players.CreatePlayer(models.Player{Name: "Ann"})
	require.NoError(t, err)
	point, err := games.AddPoint(game.ID, true, []int64{player.ID})
	require.NoError(t, err)

	for _, code := range []string{"D", "D", "A", "T"} {
		_, err := stats.RecordStat(player.ID, point.ID, code)
		require.NoError(t, err)
	}

	events, err := stats.GetPlayerStats(player.ID)
	require.NoError(t, err)
	assert.Len(t, events, 4)

	totals, err := stats.GetPlayerTotals(player.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"D": 2, "A": 1, "T": 1}, totals)
}

func TestStatService_DeleteStat(t *testing.T) {
	db := setupTestDB(t)
	games := NewGameService(db)
	players := NewPlayerService(db)
	stats := NewStatService(db)

	game, err := games.CreateGame(models.Game{OpponentTeamName: "Rival"})
	require.NoError(t, err)
	player, err := players.CreatePlayer(models.Player{Name: "Ann"})
	require.NoError(t, err)
	point, err := games.AddPoint(game.ID, false, []int64{player.ID})
	require.NoError(t, err)

	stat, err := stats.RecordStat(player.ID, point.ID, "D")
	require.NoError(t, err)

	require.NoError(t, stats.DeleteStat(stat.ID))
	_, err = stats.GetStatByID(stat.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, stats.DeleteStat(stat.ID), ErrNotFound)
}

func TestStatService_PlayerDeleteKeepsEvents(t *testing.T) {
	db := setupTestDB(t)
	games := NewGameService(db)
	players := NewPlayerService(db)
	stats := NewStatService(db)

	game, err := games.CreateGame(models.Game{OpponentTeamName: "Rival"})
	require.NoError(t, err)
	player, err := players.CreatePlayer(models.Player{Name: "Ann"})
	require.NoError(t, err)
	point, err := games.AddPoint(game.ID, true, []int64{player.ID})
	require.NoError(t, err)
	stat, err := stats.RecordStat(player.ID, point.ID, "A")
	require.NoError(t, err)

	require.NoError(t, players.DeletePlayer(player.ID))

	// The event survives with the player reference cleared.
	kept, err := stats.GetStatByID(stat.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.PlayerID)
}
