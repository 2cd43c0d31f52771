package utils

import (
	"testing"

	"bab-arcade/packages/core/models"

	"github.com/stretchr/testify/assert"
)

func TestExpectedScore(t *testing.T) {
	assert.InDelta(t, 0.5, ExpectedScore(1200, 1200), 1e-9)
	assert.InDelta(t, 0.7597, ExpectedScore(1200, 1000), 1e-4)
	assert.InDelta(t, 1.0, ExpectedScore(1200, 1000)+ExpectedScore(1000, 1200), 1e-9)
}

func TestRatingChange(t *testing.T) {
	assert.Equal(t, 16.0, RatingChange(1200, 1200, 1))
	assert.Equal(t, 0.0, RatingChange(1200, 1200, 0.5))
	assert.Equal(t, -16.0, RatingChange(1200, 1200, 0))
	// beating the easy AI is worth little, losing to it costs a lot
	assert.Equal(t, 8.0, RatingChange(1200, OpponentRating(models.DifficultyEasy), 1))
	assert.Equal(t, -24.0, RatingChange(1200, OpponentRating(models.DifficultyEasy), 0))
}

func TestOpponentRating(t *testing.T) {
	assert.Equal(t, 1400.0, OpponentRating(models.DifficultyHard))
	assert.Equal(t, StartingRating, OpponentRating("impossible"))
}
