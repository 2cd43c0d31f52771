package engine

import (
	"math/rand"
	"sync"
	"time"

	"bab-arcade/packages/core/models"
)

// MaxSimulatedGoals is the exclusive upper bound of a simulated score.
const MaxSimulatedGoals = 5

// Simulator produces scorelines for fixtures nobody plays live and shuffles
// entrants for seeding. It is safe for concurrent use.
type Simulator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSimulator(src rand.Source) *Simulator {
	return &Simulator{rng: rand.New(src)}
}

// NewSeededSimulator uses the given seed, or the current time when seed is 0.
func NewSeededSimulator(seed int64) *Simulator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return NewSimulator(rand.NewSource(seed))
}

// Simulate draws both scores independently and uniformly from 0..4.
func (s *Simulator) Simulate() models.MatchResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.MatchResult{
		Team1Score: s.rng.Intn(MaxSimulatedGoals),
		Team2Score: s.rng.Intn(MaxSimulatedGoals),
	}
}

func (s *Simulator) Shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rng.Shuffle(n, swap)
}
