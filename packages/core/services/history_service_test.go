package services

import (
	"testing"
	"time"

	"bab-arcade/packages/core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryStats(t *testing.T) {
	env := newTestEnv(testCompetitors)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	env.records.now = func() time.Time { return now }

	gs, fb, ts := testCompetitors[0], testCompetitors[1], testCompetitors[3]

	_, err := env.records.Record(1, models.ModeQuick, models.DifficultyEasy, "GS", gs, fb, models.MatchResult{Team1Score: 3, Team2Score: 1})
	require.NoError(t, err)
	// tracked on the team2 side, lost on penalties
	_, err = env.records.Record(1, models.ModeTournament, models.DifficultyHard, "GS", ts, gs, models.NewPenaltyResult(2, 5, 4))
	require.NoError(t, err)
	_, err = env.records.Record(1, models.ModeLeague, models.DifficultyNormal, "GS", gs, ts, models.MatchResult{})
	require.NoError(t, err)

	now = now.AddDate(0, 0, 10)
	_, err = env.records.Record(1, models.ModeLeague, models.DifficultyNormal, "GS", fb, gs, models.MatchResult{Team1Score: 0, Team2Score: 2})
	require.NoError(t, err)
	_, err = env.records.Record(2, models.ModeQuick, models.DifficultyNormal, "FB", fb, gs, models.MatchResult{Team1Score: 1})
	require.NoError(t, err)

	stats, err := env.records.Stats(1)
	require.NoError(t, err)
	assert.Equal(t, models.Stats{
		Played:           4,
		Won:              2,
		Drawn:            1,
		Lost:             1,
		GoalsFor:         7,
		GoalsAgainst:     3,
		ShootoutsWon:     0,
		ShootoutsLost:    1,
		MatchesLast7Days: 1,
		Rating:           1216,
		PeakRating:       1216,
	}, *stats)
}

func TestHistoryList(t *testing.T) {
	env := newTestEnv(testCompetitors)
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		at := base.Add(time.Duration(i) * time.Minute)
		env.records.now = func() time.Time { return at }
		_, err := env.records.Record(1, models.ModeQuick, models.DifficultyEasy, "GS", testCompetitors[0], testCompetitors[1], models.MatchResult{Team1Score: i})
		require.NoError(t, err)
	}

	page, err := env.records.List(1, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Data, 2)
	assert.Equal(t, 4, page.Data[0].Team1Score)
	assert.Equal(t, "GS", page.Data[0].WinnerCode)

	page, err = env.records.List(1, 3, 2)
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, 0, page.Data[0].Team1Score)
	assert.Empty(t, page.Data[0].WinnerCode)

	page, err = env.records.List(1, 9, 0)
	require.NoError(t, err)
	assert.Equal(t, 20, page.PageSize)
	assert.Empty(t, page.Data)
}
