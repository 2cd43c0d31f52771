package engine

import (
	"fmt"
	"math/rand"

	"bab-arcade/packages/core/models"
)

// fixedSource makes every simulated score 0, so simulated matches end 0-0.
// Do not shuffle with it.
type fixedSource struct{}

func (fixedSource) Int63() int64 { return 0 }
func (fixedSource) Seed(int64)   {}

func drawSimulator() *Simulator {
	return NewSimulator(fixedSource{})
}

func seededSimulator(seed int64) *Simulator {
	return NewSimulator(rand.NewSource(seed))
}

func competitors(n int) []models.Competitor {
	out := make([]models.Competitor, n)
	for i := range out {
		letter := string(rune('A' + i))
		out[i] = models.Competitor{
			Code: fmt.Sprintf("T%s", letter),
			Name: "Team " + letter,
		}
	}
	return out
}

func result(a, b int) models.MatchResult {
	return models.MatchResult{Team1Score: a, Team2Score: b}
}
