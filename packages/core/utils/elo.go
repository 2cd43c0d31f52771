package utils

import (
	"math"

	"bab-arcade/packages/core/models"
)

// StartingRating is the rating of a profile before its first match.
const StartingRating = 1200.0

const eloK = 32.0

// The AI plays at a fixed strength per difficulty.
var opponentRatings = map[models.Difficulty]float64{
	models.DifficultyEasy:   1000,
	models.DifficultyNormal: 1200,
	models.DifficultyHard:   1400,
}

func OpponentRating(d models.Difficulty) float64 {
	if r, ok := opponentRatings[d]; ok {
		return r
	}
	return StartingRating
}

// ExpectedScore is the standard Elo expectation of rating against opponent.
func ExpectedScore(rating, opponent float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (opponent-rating)/400))
}

// RatingChange returns the rounded change for a score of 1 (win), 0.5 (draw)
// or 0 (loss).
func RatingChange(rating, opponent, score float64) float64 {
	return math.Round(eloK * (score - ExpectedScore(rating, opponent)))
}
