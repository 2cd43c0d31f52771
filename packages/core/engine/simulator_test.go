package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateRange(t *testing.T) {
	sim := seededSimulator(2024)
	seen1 := make(map[int]bool)
	seen2 := make(map[int]bool)

	for i := 0; i < 2000; i++ {
		r := sim.Simulate()
		require.GreaterOrEqual(t, r.Team1Score, 0)
		require.Less(t, r.Team1Score, MaxSimulatedGoals)
		require.GreaterOrEqual(t, r.Team2Score, 0)
		require.Less(t, r.Team2Score, MaxSimulatedGoals)
		require.False(t, r.HasPenalties())
		require.NoError(t, r.Validate())
		seen1[r.Team1Score] = true
		seen2[r.Team2Score] = true
	}

	for goals := 0; goals < MaxSimulatedGoals; goals++ {
		assert.True(t, seen1[goals], "team1 never scored %d", goals)
		assert.True(t, seen2[goals], "team2 never scored %d", goals)
	}
}

func TestSimulateIsReproducible(t *testing.T) {
	a, b := seededSimulator(99), seededSimulator(99)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Simulate(), b.Simulate())
	}
}

func TestSeededSimulatorWithZeroSeed(t *testing.T) {
	r := NewSeededSimulator(0).Simulate()
	assert.Less(t, r.Team1Score, MaxSimulatedGoals)
	assert.Less(t, r.Team2Score, MaxSimulatedGoals)
}
